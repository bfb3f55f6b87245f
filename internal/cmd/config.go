package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frakbot/licensegen/internal/config"
	"github.com/frakbot/licensegen/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage licensegen configuration",
		Long: `Manage the licensegen configuration file.

Settings are resolved in this order, first match wins:
  1. command-line flags
  2. LICENSEGEN_* environment variables
  3. the config file (--config, LICENSEGEN_CONFIG, or ./licensegen.yaml)
  4. built-in defaults`,
	}

	cmd.AddCommand(NewConfigInitCmd())
	cmd.AddCommand(NewConfigShowCmd())

	return cmd
}

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a configuration file holding the default settings.

The file is written to the path given by --config or LICENSEGEN_CONFIG,
or to ./licensegen.yaml.

Examples:
  # Initialize configuration
  licensegen config init

  # Overwrite existing configuration
  licensegen config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	path := GetConfigPath()
	if err := config.WriteConfigFile(path, config.DefaultConfig(), force); err != nil {
		return reportError("config", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, output.FormatFileLine(path, output.StatusWritten))
	fmt.Fprintln(w, output.FormatCheckmark("Configuration initialized"))
	return nil
}

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved settings and where each came from",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configErr != nil {
		return reportError("config", configErr)
	}

	r := GetResolvedConfig()
	template := r.Template
	if template.Value == "" {
		template.Value = "(built-in)"
	}

	tbl := output.NewTable("SETTING", "VALUE", "SOURCE")
	tbl.Row("config", GetConfigPath(), string(configPath.Source))
	tbl.Row("manifest", r.Manifest.Value, string(r.Manifest.Source))
	tbl.Row("template", template.Value, string(template.Source))
	tbl.Row("textDir", r.TextDir.Value, string(r.TextDir.Source))
	tbl.Row("output", r.Output.Value, string(r.Output.Source))

	fmt.Fprintln(cmd.OutOrStdout(), tbl.String())
	return nil
}
