package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	oerrors "github.com/frakbot/licensegen/internal/errors"
)

// Environment variable prefix for licensegen configuration.
const envPrefix = "LICENSEGEN"

// Environment variable names.
const (
	EnvConfig     = "LICENSEGEN_CONFIG"
	EnvManifest   = "LICENSEGEN_MANIFEST"
	EnvTemplate   = "LICENSEGEN_TEMPLATE"
	EnvTextDir    = "LICENSEGEN_TEXT_DIR"
	EnvOutput     = "LICENSEGEN_OUTPUT"
	EnvTimestamps = "LICENSEGEN_LOG_TIMESTAMPS"
)

// Loader handles loading and merging configuration from the config file and environment.
type Loader struct {
	v *viper.Viper

	// used is the config file actually read by the last Load.
	used string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("manifest", EnvManifest)
	_ = v.BindEnv("template", EnvTemplate)
	_ = v.BindEnv("textDir", EnvTextDir)
	_ = v.BindEnv("output", EnvOutput)
	_ = v.BindEnv("log.timestamps", EnvTimestamps)

	return &Loader{v: v}
}

// LoaderOptions controls which config file Load reads.
type LoaderOptions struct {
	// ConfigFile is the path to read. Empty means DefaultConfigFile.
	ConfigFile string

	// Required makes a missing config file an error. It is set when the
	// path was given explicitly by flag or environment.
	Required bool
}

// Load loads configuration from the config file. Environment variables
// take precedence over file values. A missing optional file yields a config
// built from the environment alone.
func (l *Loader) Load(opts LoaderOptions) (*Config, error) {
	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = DefaultConfigFile
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	l.used = ""
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
			if opts.Required {
				return nil, oerrors.NewNotFoundError(
					"config file does not exist",
					expandedPath,
					"Create it with 'licensegen config init' or drop the --config flag",
				)
			}
		default:
			return nil, fmt.Errorf("reading config file %s: %w: %w", expandedPath, oerrors.ErrValidation, err)
		}
	} else {
		l.used = expandedPath
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w: %w", oerrors.ErrValidation, err)
	}

	return &cfg, nil
}

// ConfigFileUsed returns the config file read by the last Load, or "" if none was read.
func (l *Loader) ConfigFileUsed() string {
	return l.used
}
