package config

import (
	"os"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a configuration value together with its source.
type ResolvedValue struct {
	Value  string
	Source ConfigSource
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
}

// Explicit reports whether the user asked for this config file, which makes
// a missing file an error.
func (r ResolveConfigPathResult) Explicit() bool {
	return r.Source == SourceFlag || r.Source == SourceEnv
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) LICENSEGEN_CONFIG env, (3) ./licensegen.yaml default.
func ResolveConfigPath(flagValue string) ResolveConfigPathResult {
	if flagValue != "" {
		return ResolveConfigPathResult{ConfigPath: flagValue, Source: SourceFlag}
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return ResolveConfigPathResult{ConfigPath: env, Source: SourceEnv}
	}
	return ResolveConfigPathResult{ConfigPath: DefaultConfigFile, Source: SourceDefault}
}

// ResolveOptions carries the inputs of Resolve.
type ResolveOptions struct {
	// Flag values; empty means the flag was not set.
	ManifestFlag string
	TemplateFlag string
	TextDirFlag  string
	OutputFlag   string

	// Config is the loaded config (file merged with environment). May be nil.
	Config *Config
}

// ResolvedConfig holds the resolved generator locations.
type ResolvedConfig struct {
	Manifest ResolvedValue
	Template ResolvedValue
	TextDir  ResolvedValue
	Output   ResolvedValue
}

// Resolve resolves every generator location using precedence:
// flag > env > config file > default.
func Resolve(opts ResolveOptions) *ResolvedConfig {
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}

	return &ResolvedConfig{
		Manifest: resolveValue(opts.ManifestFlag, EnvManifest, cfg.Manifest, DefaultManifest),
		Template: resolveValue(opts.TemplateFlag, EnvTemplate, cfg.Template, ""),
		TextDir:  resolveValue(opts.TextDirFlag, EnvTextDir, cfg.TextDir, DefaultTextDir),
		Output:   resolveValue(opts.OutputFlag, EnvOutput, cfg.Output, DefaultOutput),
	}
}

// resolveValue applies flag > env > config > default. The loaded config value
// already includes the environment override, so env is only consulted to
// report the source.
func resolveValue(flagValue, envName, configValue, defaultValue string) ResolvedValue {
	if flagValue != "" {
		return ResolvedValue{Value: flagValue, Source: SourceFlag}
	}
	if env := os.Getenv(envName); env != "" {
		return ResolvedValue{Value: env, Source: SourceEnv}
	}
	if configValue != "" {
		return ResolvedValue{Value: configValue, Source: SourceConfig}
	}
	return ResolvedValue{Value: defaultValue, Source: SourceDefault}
}

// Generator expands ~ in every location and returns the validated
// generator configuration.
func (r *ResolvedConfig) Generator() (Generator, error) {
	var g Generator
	targets := []struct {
		dst *string
		src string
	}{
		{&g.ManifestPath, r.Manifest.Value},
		{&g.TemplatePath, r.Template.Value},
		{&g.TextDir, r.TextDir.Value},
		{&g.OutputPath, r.Output.Value},
	}
	for _, t := range targets {
		expanded, err := ExpandPath(t.src)
		if err != nil {
			return Generator{}, err
		}
		*t.dst = expanded
	}

	if err := g.Validate(); err != nil {
		return Generator{}, err
	}
	return g, nil
}
