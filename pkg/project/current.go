package project

import (
	"sync"

	"github.com/thoreinstein/projkit/internal/errors"
)

var (
	currentMu sync.Mutex
	current   *Project
)

// Use sets the process-wide project. Call it once at program start.
// Calling it again with the same name and directory is a no-op; switching to
// a different project returns ErrAlreadyInitialized.
func Use(name string, opts ...Option) error {
	p, err := New(name, opts...)
	if err != nil {
		return err
	}

	currentMu.Lock()
	defer currentMu.Unlock()

	if current != nil {
		if current.name == p.name && current.ConfigPath() == p.ConfigPath() {
			return nil
		}
		return errors.Wrapf(ErrAlreadyInitialized, "current project is %q, cannot switch to %q", current.name, name)
	}
	current = p
	return nil
}

// Current returns the process-wide project set by Use.
func Current() (*Project, error) {
	currentMu.Lock()
	defer currentMu.Unlock()

	if current == nil {
		return nil, ErrNotInitialized
	}
	return current, nil
}

// LoadCurrent loads the configuration of the process-wide project.
func LoadCurrent[T any]() (*T, error) {
	p, err := Current()
	if err != nil {
		return nil, err
	}
	return Load[T](p)
}
