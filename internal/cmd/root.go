// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/frakbot/licensegen/internal/config"
	"github.com/frakbot/licensegen/internal/generator"
	"github.com/frakbot/licensegen/internal/output"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool
	manifestFlag   string
	templateFlag   string
	textDirFlag    string
	outputFlag     string

	// Resolved configuration (loaded during PersistentPreRunE)
	configPath     config.ResolveConfigPathResult
	loadedConfig   *config.Config
	configErr      error
	resolvedConfig *config.ResolvedConfig
)

// NewRootCmd creates the root command for the licensegen CLI.
// Running it without a subcommand is the same as running "build".
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "licensegen",
		Short: "Generate the license page from a license manifest",
		Long: `licensegen builds a single HTML page listing third-party licenses.

It reads the license manifest (licenses.json), loads files/<short>.txt for
every entry, renders the page template and writes the result, removing the
previous page first.

Without a subcommand it runs "build" (clean, then render).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
		RunE: runBuild,
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: LICENSEGEN_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")
	rootCmd.PersistentFlags().StringVar(&manifestFlag, "manifest", "", "Path to the license manifest (env: LICENSEGEN_MANIFEST)")
	rootCmd.PersistentFlags().StringVar(&templateFlag, "template", "", "Path to the page template, empty for the built-in one (env: LICENSEGEN_TEMPLATE)")
	rootCmd.PersistentFlags().StringVar(&textDirFlag, "text-dir", "", "Directory of <short>.txt license texts (env: LICENSEGEN_TEXT_DIR)")
	rootCmd.PersistentFlags().StringVar(&outputFlag, "output", "", "Path of the generated page (env: LICENSEGEN_OUTPUT)")

	rootCmd.AddCommand(NewBuildCmd())
	rootCmd.AddCommand(NewCleanCmd())
	rootCmd.AddCommand(NewRenderCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
// A config load error does not fail here so that commands which do not need
// the generator settings (version, config init) keep working; it is reported
// by newGenerator instead.
func initializeGlobals(cmd *cobra.Command) error {
	configPath = config.ResolveConfigPath(configFlag)

	loader := config.NewLoader()
	loadedConfig, configErr = loader.Load(config.LoaderOptions{
		ConfigFile: configPath.ConfigPath,
		Required:   configPath.Explicit(),
	})

	var cfg *config.Config
	if configErr == nil {
		cfg = loadedConfig
	}

	// Resolve timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: verboseFlag}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if cfg != nil && cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if configErr != nil {
		output.Debug("config load error", "error", configErr)
	}

	resolvedConfig = config.Resolve(config.ResolveOptions{
		ManifestFlag: manifestFlag,
		TemplateFlag: templateFlag,
		TextDirFlag:  textDirFlag,
		OutputFlag:   outputFlag,
		Config:       cfg,
	})

	output.Debug("initializing CLI",
		"config", configPath.ConfigPath,
		"config-source", configPath.Source,
		"config-used", loader.ConfigFileUsed(),
		"manifest", resolvedConfig.Manifest.Value,
		"template", resolvedConfig.Template.Value,
		"text-dir", resolvedConfig.TextDir.Value,
		"output", resolvedConfig.Output.Value,
	)

	return nil
}

// newGenerator builds a generator from the resolved configuration.
func newGenerator() (*generator.Generator, error) {
	if configErr != nil {
		return nil, configErr
	}
	cfg, err := GetResolvedConfig().Generator()
	if err != nil {
		return nil, err
	}
	return generator.New(cfg), nil
}

// GetResolvedConfig returns the resolved configuration. Before
// PersistentPreRunE has run it resolves flags against defaults only.
func GetResolvedConfig() *config.ResolvedConfig {
	if resolvedConfig != nil {
		return resolvedConfig
	}
	return config.Resolve(config.ResolveOptions{
		ManifestFlag: manifestFlag,
		TemplateFlag: templateFlag,
		TextDirFlag:  textDirFlag,
		OutputFlag:   outputFlag,
	})
}

// GetConfigPath returns the resolved config file path.
func GetConfigPath() string {
	if configPath.ConfigPath != "" {
		return configPath.ConfigPath
	}
	return config.ResolveConfigPath(configFlag).ConfigPath
}
