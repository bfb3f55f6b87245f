package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals outside this block.
var (
	// ColorCyan is used for identifiable nouns: paths, license identifiers.
	ColorCyan = lipgloss.Color("14")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")

	// ColorRed is used for the "removed" file status.
	ColorRed = lipgloss.Color("196")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (paths, license identifiers).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// File status constants reported by the clean and render tasks.
const (
	StatusWritten = "written"
	StatusRemoved = "removed"
	StatusAbsent  = "absent"
)

// StatusStyle returns the style for a file status. Unknown statuses are unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusWritten:
		return lipgloss.NewStyle().Foreground(ColorGreenCheck)
	case StatusRemoved:
		return lipgloss.NewStyle().Foreground(ColorRed)
	case StatusAbsent:
		return lipgloss.NewStyle().Faint(true)
	default:
		return lipgloss.NewStyle()
	}
}

// FormatFileLine renders "f:<path> <status>" with a dim prefix, cyan path and styled status.
func FormatFileLine(path, status string) string {
	return StyleDim.Render("f:") + StyleNoun.Render(path) + "  " + StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
