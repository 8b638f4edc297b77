package paths

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/projkit/internal/errors"
)

// AppName is the name the projkit CLI uses for its own config directory.
const AppName = "projkit"

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// Sentinel errors for path resolution.
var (
	// ErrConfigRootNotFound indicates the platform configuration root could not be determined.
	ErrConfigRootNotFound = errors.New("config root not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// configHome resolves the configuration root once per process.
var configHome = sync.OnceValues(func() (string, error) {
	dir := xdg.ConfigHome
	if dir == "" {
		return "", ErrConfigRootNotFound
	}
	if !filepath.IsAbs(dir) {
		return "", errors.Wrapf(ErrConfigRootNotFound, "%q is not absolute", dir)
	}
	return dir, nil
})

// ConfigHome returns the platform configuration root.
// On Linux: $XDG_CONFIG_HOME or ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
//
// The value is computed on first use and cached for the process lifetime.
func ConfigHome() (string, error) {
	return configHome()
}

// ProjectDir returns <root>/<name>. The name must be a single path element.
func ProjectDir(root, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if root == "" {
		return "", errors.Wrap(ErrInvalidPath, "empty config root")
	}
	return filepath.Join(root, name), nil
}

// ValidateName rejects names that would escape or collapse the config root.
func ValidateName(name string) error {
	switch {
	case name == "":
		return errors.Wrap(errors.ErrMissingName, "project name")
	case name == "." || name == "..":
		return errors.Wrapf(ErrInvalidPath, "project name %q", name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, '\x00'):
		return errors.Wrapf(ErrInvalidPath, "project name %q contains a separator", name)
	}
	return nil
}

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	if err := os.MkdirAll(path, perm); err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	return nil
}
