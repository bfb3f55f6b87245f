package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	oerrors "github.com/frakbot/licensegen/internal/errors"
	"github.com/frakbot/licensegen/internal/output"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the licenses in the manifest",
		Long: `Load the manifest and every license text, then print the licenses
without touching the generated page.

Table output summarises each text by size; yaml and json include it verbatim.
The default is table on a terminal and json otherwise.

Examples:
  licensegen list
  licensegen list -f yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, formatFlag)
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "",
		"Output format: "+strings.Join(output.ValidFormats(), ", "))

	return cmd
}

func runList(cmd *cobra.Command, formatFlag string) error {
	format := output.DefaultFormat(output.IsTerminal(os.Stdout))
	if formatFlag != "" {
		parsed, valid := output.ParseFormat(formatFlag)
		if !valid {
			return &oerrors.ExitError{
				Code: oerrors.ExitGeneralError,
				Err: fmt.Errorf("invalid output format %q (valid: %s)",
					formatFlag, strings.Join(output.ValidFormats(), ", ")),
			}
		}
		format = parsed
	}

	gen, err := newGenerator()
	if err != nil {
		return reportError("list", err)
	}

	m, err := gen.Licenses(cmd.Context())
	if err != nil {
		return reportError("list", err)
	}

	infos := make([]output.LicenseInfo, len(m.Entries))
	for i, e := range m.Entries {
		infos[i] = e
	}

	if err := output.WriteLicenses(infos, output.ListOptions{
		Format: format,
		Writer: cmd.OutOrStdout(),
	}); err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("writing licenses: %w", err)}
	}
	return nil
}
