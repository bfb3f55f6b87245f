package cmd

import (
	"github.com/spf13/cobra"
)

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render the license page without cleaning first",
		Long: `Load the manifest, attach every license text, render the template and
write the page. The previous page is not removed first; it is replaced only
when rendering succeeds.

Examples:
  licensegen render
  licensegen render --template license.html`,
		Args: cobra.NoArgs,
		RunE: runRender,
	}
}

func runRender(cmd *cobra.Command, _ []string) error {
	gen, err := newGenerator()
	if err != nil {
		return reportError("render", err)
	}

	result, err := gen.Render(cmd.Context())
	if err != nil {
		return reportError("render", err)
	}

	writeRenderSummary(cmd.OutOrStdout(), result)
	return nil
}
