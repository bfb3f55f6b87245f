package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/frakbot/licensegen/internal/generator"
	"github.com/frakbot/licensegen/internal/output"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Clean and render the license page",
		Long: `Remove the previous license page, then render a new one.

Steps:
  1. clean   remove the output file if it exists
  2. render  load the manifest, attach each files/<short>.txt,
             render the template and write the page

The first failure stops the build. Because the old page is removed first,
a failed build leaves no page behind.

Examples:
  # Build with the default layout
  licensegen build

  # Build with explicit locations
  licensegen build --manifest licenses.json --text-dir files --output www/license.html

  # Build with a custom template
  licensegen build --template license.html`,
		Args: cobra.NoArgs,
		RunE: runBuild,
	}
}

func runBuild(cmd *cobra.Command, _ []string) error {
	gen, err := newGenerator()
	if err != nil {
		return reportError("build", err)
	}

	result, err := gen.Run(cmd.Context())
	if err != nil {
		return reportError("build", err)
	}

	w := cmd.OutOrStdout()
	if result.Removed {
		fmt.Fprintln(w, output.FormatFileLine(result.OutputPath, output.StatusRemoved))
	}
	writeRenderSummary(w, result)
	return nil
}

// writeRenderSummary prints the written file line and the completion line.
func writeRenderSummary(w io.Writer, result *generator.Result) {
	fmt.Fprintln(w, output.FormatFileLine(result.OutputPath, output.StatusWritten))
	fmt.Fprintln(w, output.FormatCheckmark(
		fmt.Sprintf("%d license(s) rendered, %d bytes", len(result.Licenses), result.Size)))
}
