// Package config provides configuration loading and resolution for licensegen.
package config

import (
	"fmt"
	"strings"

	oerrors "github.com/frakbot/licensegen/internal/errors"
)

// Default locations, relative to the working directory. They reproduce the
// layout of the license page sources: a manifest and a files/ directory next
// to each other, with the page written into the app's web assets.
const (
	DefaultManifest = "licenses.json"
	DefaultTextDir  = "files"
	DefaultOutput   = "../assets/www/license.html"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the licensegen configuration file.
// Env: LICENSEGEN_MANIFEST, LICENSEGEN_TEMPLATE, LICENSEGEN_TEXT_DIR, LICENSEGEN_OUTPUT.
type Config struct {
	// Manifest is the path to the JSON license manifest.
	Manifest string `mapstructure:"manifest" yaml:"manifest,omitempty"`

	// Template is the path to the HTML template. Empty selects the embedded template.
	Template string `mapstructure:"template" yaml:"template,omitempty"`

	// TextDir is the directory holding one <short>.txt file per license.
	TextDir string `mapstructure:"textDir" yaml:"textDir,omitempty"`

	// Output is the path of the generated HTML page.
	Output string `mapstructure:"output" yaml:"output,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `licensegen config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Manifest: DefaultManifest,
		TextDir:  DefaultTextDir,
		Output:   DefaultOutput,
		Log: LogConfig{
			Timestamps: boolPtr(true),
		},
	}
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
// Template stays empty so the embedded template is used.
func (c *Config) WithDefaults() *Config {
	out := Config{}
	if c != nil {
		out = *c
	}
	if out.Manifest == "" {
		out.Manifest = DefaultManifest
	}
	if out.TextDir == "" {
		out.TextDir = DefaultTextDir
	}
	if out.Output == "" {
		out.Output = DefaultOutput
	}
	return &out
}

// Generator is the explicit configuration of one generator run.
type Generator struct {
	// ManifestPath is the JSON manifest listing the licenses.
	ManifestPath string

	// TemplatePath is the HTML template. Empty selects the embedded template.
	TemplatePath string

	// TextDir is the directory containing <short>.txt license texts.
	TextDir string

	// OutputPath is where the rendered page is written.
	OutputPath string
}

// Validate checks that every required location is set.
func (g Generator) Validate() error {
	var missing []string
	if g.ManifestPath == "" {
		missing = append(missing, "manifest")
	}
	if g.TextDir == "" {
		missing = append(missing, "textDir")
	}
	if g.OutputPath == "" {
		missing = append(missing, "output")
	}
	if len(missing) > 0 {
		return oerrors.NewValidationError(
			fmt.Sprintf("missing required setting(s): %s", strings.Join(missing, ", ")),
			"", "", "Set them in licensegen.yaml, via LICENSEGEN_* environment variables, or with flags",
		)
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
