package project

import "github.com/thoreinstein/projkit/internal/errors"

// Sentinel errors. Every error returned by this package is marked with one
// of these, so callers can branch with errors.Is.
var (
	// ErrInvalidName indicates the project name cannot be used as a directory name.
	ErrInvalidName = errors.New("invalid project name")

	// ErrConfigRoot indicates the platform configuration root is unavailable.
	ErrConfigRoot = errors.New("config root unavailable")

	// ErrCreateDir indicates the project configuration directory could not be created.
	ErrCreateDir = errors.New("cannot create config directory")

	// ErrBootstrap indicates the default configuration file could not be written.
	ErrBootstrap = errors.New("cannot write default config")

	// ErrRead indicates the configuration file could not be read.
	ErrRead = errors.New("cannot read config")

	// ErrParse indicates the configuration file is not valid TOML.
	ErrParse = errors.New("cannot parse config")

	// ErrDecode indicates the parsed configuration does not fit the target type.
	ErrDecode = errors.New("config does not match expected shape")

	// ErrNotInitialized indicates Current was called before Use.
	ErrNotInitialized = errors.New("no current project; call project.Use first")

	// ErrAlreadyInitialized indicates Use was called again with a different project.
	ErrAlreadyInitialized = errors.New("current project already set")
)
