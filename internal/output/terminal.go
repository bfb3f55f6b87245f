package output

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether f refers to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// DefaultFormat picks the list format when none was requested:
// a table for interactive terminals, JSON when stdout is piped.
func DefaultFormat(interactive bool) Format {
	if interactive {
		return FormatTable
	}
	return FormatJSON
}
