package fileutil

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/thoreinstein/projkit/internal/errors"
)

// renameFunc is swapped in tests to simulate a cross-device rename.
var renameFunc = os.Rename

// Rename moves from to to. It first tries an atomic rename; when the two
// paths live on different filesystems (EXDEV) it copies the file and then
// removes the source.
//
// The fallback is not atomic: a crash between the copy and the removal
// leaves both files in place.
func Rename(from, to string) error {
	err := renameFunc(from, to)
	if err == nil {
		return nil
	}
	if !errors.Is(err, unix.EXDEV) {
		return errors.Wrapf(err, "renaming %s to %s", from, to)
	}

	if err := CopyFile(from, to); err != nil {
		return errors.Wrapf(err, "copying %s to %s across devices", from, to)
	}
	if err := os.Remove(from); err != nil {
		return errors.Wrapf(err, "removing %s after cross-device copy", from)
	}
	return nil
}
