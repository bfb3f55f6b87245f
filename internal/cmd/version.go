package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frakbot/licensegen/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show licensegen version information.

Displays the version, commit, build date, Go version and platform.`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := version.Get()

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "licensegen version %s\n", info.Version)
	fmt.Fprintf(w, "  Commit:    %s\n", info.GitCommit)
	fmt.Fprintf(w, "  Built:     %s\n", info.BuildDate)
	fmt.Fprintf(w, "  Go:        %s\n", info.GoVersion)
	fmt.Fprintf(w, "  Platform:  %s\n", info.Platform)

	return nil
}
