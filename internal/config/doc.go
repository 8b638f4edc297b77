// Package config provides configuration management for the projkit CLI.
//
// The CLI stores its own settings the same way any program using
// [project.Load] does: a config.toml under <config root>/projkit, written
// with defaults on first use and never rewritten afterwards.
//
//	version = 1
//	log_level = 'warn'
//	log_format = 'text'
//	editor = ''
//
// # Loading Configuration
//
//	p, err := config.Project()
//	if err != nil {
//	    return err
//	}
//	cfg, err := config.Load(p)
//
// Environment variables prefixed with PROJKIT_ override file values after
// loading (PROJKIT_LOG_LEVEL, PROJKIT_LOG_FORMAT, PROJKIT_EDITOR).
//
// # Validation
//
// [Load] validates automatically. [Validate] returns every problem found:
//
//	for _, e := range config.Validate(cfg) {
//	    fmt.Println(e)
//	}
package config
