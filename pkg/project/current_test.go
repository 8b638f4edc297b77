package project

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/projkit/internal/errors"
)

func TestCurrent_BeforeUse(t *testing.T) {
	resetCurrent()
	t.Cleanup(resetCurrent)

	_, err := Current()
	assert.True(t, errors.Is(err, ErrNotInitialized))

	_, err = LoadCurrent[plainConfig]()
	assert.True(t, errors.Is(err, ErrNotInitialized))
}

func TestUse_ThenLoadCurrent(t *testing.T) {
	resetCurrent()
	t.Cleanup(resetCurrent)
	root := t.TempDir()

	require.NoError(t, Use("demo", WithConfigRoot(root)))

	p, err := Current()
	require.NoError(t, err)
	assert.Equal(t, "demo", p.Name())
	assert.Equal(t, filepath.Join(root, "demo"), p.Dir())

	cfg, err := LoadCurrent[appConfig]()
	require.NoError(t, err)
	assert.Equal(t, Defaults[appConfig](), cfg)
	assert.FileExists(t, filepath.Join(root, "demo", DefaultFileName))
}

func TestUse_Reinitialize(t *testing.T) {
	resetCurrent()
	t.Cleanup(resetCurrent)
	root := t.TempDir()

	require.NoError(t, Use("demo", WithConfigRoot(root)))
	assert.NoError(t, Use("demo", WithConfigRoot(root)), "same identity is a no-op")

	err := Use("other", WithConfigRoot(root))
	assert.True(t, errors.Is(err, ErrAlreadyInitialized), "error = %v", err)

	err = Use("demo", WithConfigRoot(t.TempDir()))
	assert.True(t, errors.Is(err, ErrAlreadyInitialized), "different root is a different identity: %v", err)

	p, err := Current()
	require.NoError(t, err)
	assert.Equal(t, "demo", p.Name())
	assert.Equal(t, filepath.Join(root, "demo"), p.Dir())
}

func TestUse_InvalidNameLeavesStateUnset(t *testing.T) {
	resetCurrent()
	t.Cleanup(resetCurrent)

	err := Use("", WithConfigRoot(t.TempDir()))
	assert.True(t, errors.Is(err, ErrInvalidName))

	_, err = Current()
	assert.True(t, errors.Is(err, ErrNotInitialized))
}

func TestUse_Concurrent(t *testing.T) {
	resetCurrent()
	t.Cleanup(resetCurrent)
	root := t.TempDir()

	names := []string{"a", "b", "c", "d"}
	errs := make([]error, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = Use(name, WithConfigRoot(root))
		}()
	}
	wg.Wait()

	p, err := Current()
	require.NoError(t, err)

	winners := 0
	for i, name := range names {
		if errs[i] == nil {
			winners++
			assert.Equal(t, name, p.Name())
		} else {
			assert.True(t, errors.Is(errs[i], ErrAlreadyInitialized))
		}
	}
	assert.Equal(t, 1, winners)
}
