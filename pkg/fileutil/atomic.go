// Package fileutil provides file system helpers: atomic writes, bounded reads,
// copying, cross-device renames, and file identity checks.
package fileutil

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/projkit/internal/errors"
)

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// Readers see either the previous content or the complete new content, never a prefix.
//
// The caller is responsible for ensuring the parent directory exists.
// Permissions are applied to the final file via the perm parameter.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// same directory keeps the rename on one filesystem
	tmp, err := os.CreateTemp(dir, ".projkit-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "syncing temp file")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	renamed = true

	return nil
}

// MarshalTOML encodes v as TOML with indented sub-tables.
// Struct fields keep their declaration order.
func MarshalTOML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "marshaling TOML")
	}
	return buf.Bytes(), nil
}

// AtomicWriteTOML writes v as TOML to path atomically with the given permissions.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteTOML(path string, v any, perm os.FileMode) error {
	data, err := MarshalTOML(v)
	if err != nil {
		return err
	}
	return AtomicWriteFile(path, data, perm)
}
