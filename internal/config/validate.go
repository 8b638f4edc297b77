package config

import (
	"fmt"

	"github.com/thoreinstein/projkit/internal/errors"
	"github.com/thoreinstein/projkit/internal/logging"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates the version field is not one this build understands.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidLogLevel indicates an unrecognized log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates an unrecognized log format.
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, &FieldError{Field: "version", Value: cfg.Version, Err: ErrUnsupportedVersion})
	}

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, &FieldError{Field: "log_level", Value: cfg.LogLevel, Err: ErrInvalidLogLevel})
	}

	switch logging.Format(cfg.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, &FieldError{Field: "log_format", Value: cfg.LogFormat, Err: ErrInvalidLogFormat})
	}

	return errs
}

// FieldError ties a validation failure to the offending field.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v: %#v", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
