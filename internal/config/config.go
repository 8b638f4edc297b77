// Package config holds the projkit CLI's own configuration.
package config

import (
	"github.com/spf13/viper"

	"github.com/thoreinstein/projkit/internal/errors"
	"github.com/thoreinstein/projkit/internal/paths"
	"github.com/thoreinstein/projkit/pkg/project"
)

// CurrentVersion is the config format version written by this build.
const CurrentVersion = 1

// EnvPrefix prefixes environment variables that override file values,
// e.g. PROJKIT_LOG_LEVEL.
const EnvPrefix = "PROJKIT"

// Config is the CLI configuration, stored in <config root>/projkit/config.toml.
type Config struct {
	Version   int    `toml:"version"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	// Editor overrides $EDITOR for "projkit config edit". Empty means auto-detect.
	Editor string `toml:"editor"`
}

// SetDefaults implements project.Defaulter.
func (c *Config) SetDefaults() {
	c.Version = CurrentVersion
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.Editor = ""
}

// Project returns the project that owns the CLI configuration.
func Project(opts ...project.Option) (*project.Project, error) {
	return project.New(paths.AppName, opts...)
}

// Load reads the CLI configuration through p, creating it with defaults on
// first use, applies environment overrides, and validates the result.
func Load(p *project.Project) (*Config, error) {
	cfg, err := project.Load[Config](p)
	if err != nil {
		return nil, err
	}

	applyEnv(cfg)

	if errs := Validate(cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errs[0], "validating config"), errors.ErrInvalidConfig)
	}
	return cfg, nil
}

// applyEnv overlays PROJKIT_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if v.IsSet("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}
	if v.IsSet("log_format") {
		cfg.LogFormat = v.GetString("log_format")
	}
	if v.IsSet("editor") {
		cfg.Editor = v.GetString("editor")
	}
}
