package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frakbot/licensegen/internal/output"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the generated license page",
		Long: `Remove the generated license page. A missing page is not an error.

Examples:
  licensegen clean
  licensegen clean --output www/license.html`,
		Args: cobra.NoArgs,
		RunE: runClean,
	}
}

func runClean(cmd *cobra.Command, _ []string) error {
	gen, err := newGenerator()
	if err != nil {
		return reportError("clean", err)
	}

	result, err := gen.Clean(cmd.Context())
	if err != nil {
		return reportError("clean", err)
	}

	status := output.StatusAbsent
	if result.Removed {
		status = output.StatusRemoved
	}
	fmt.Fprintln(cmd.OutOrStdout(), output.FormatFileLine(result.Path, status))
	return nil
}
