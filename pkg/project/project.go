package project

import (
	"log/slog"
	"path/filepath"

	"github.com/thoreinstein/projkit/internal/errors"
	"github.com/thoreinstein/projkit/internal/logging"
	"github.com/thoreinstein/projkit/internal/paths"
)

// DefaultFileName is the configuration file created inside the project directory.
const DefaultFileName = "config.toml"

// Project is a named configuration namespace: <config root>/<name>/config.toml.
// A Project is immutable and safe for concurrent use.
type Project struct {
	name     string
	dir      string
	fileName string
	logger   *slog.Logger
}

type options struct {
	root     string
	fileName string
	logger   *slog.Logger
}

// Option configures a Project.
type Option func(*options)

// WithConfigRoot places the project directory under root instead of the
// platform configuration root.
func WithConfigRoot(root string) Option {
	return func(o *options) {
		o.root = root
	}
}

// WithFileName overrides the configuration file name (default "config.toml").
func WithFileName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.fileName = name
		}
	}
}

// WithLogger sets the logger used for bootstrap diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New resolves the configuration directory for name. Nothing is created on
// disk until the configuration is first loaded.
func New(name string, opts ...Option) (*Project, error) {
	o := options{
		fileName: DefaultFileName,
		logger:   logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := paths.ValidateName(name); err != nil {
		return nil, errors.Mark(err, ErrInvalidName)
	}
	if err := paths.ValidateName(o.fileName); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "config file name"), ErrInvalidName)
	}

	root := o.root
	if root == "" {
		r, err := paths.ConfigHome()
		if err != nil {
			return nil, errors.Mark(err, ErrConfigRoot)
		}
		root = r
	}

	dir, err := paths.ProjectDir(root, name)
	if err != nil {
		return nil, errors.Mark(err, ErrConfigRoot)
	}

	return &Project{
		name:     name,
		dir:      dir,
		fileName: o.fileName,
		logger:   o.logger.With("project", name),
	}, nil
}

// Name returns the project name.
func (p *Project) Name() string { return p.name }

// Dir returns the project configuration directory.
func (p *Project) Dir() string { return p.dir }

// ConfigPath returns the full path of the configuration file.
func (p *Project) ConfigPath() string { return filepath.Join(p.dir, p.fileName) }

// LockPath returns the advisory lock file guarding first-run creation of the
// configuration file. It is created on demand and never removed.
func (p *Project) LockPath() string { return p.ConfigPath() + lockSuffix }
