package fileutil

import (
	"io/fs"

	"golang.org/x/sys/unix"

	"github.com/thoreinstein/projkit/internal/errors"
)

// FileID identifies a file by its device and inode numbers.
type FileID struct {
	Dev uint64
	Ino uint64
}

// Identify returns the FileID of path, following symlinks.
// Stat failures are returned as *fs.PathError, so errors.Is(err, fs.ErrNotExist)
// works for missing paths.
func Identify(path string) (FileID, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return FileID{}, &fs.PathError{Op: "stat", Path: path, Err: err}
	}
	return FileID{Dev: uint64(st.Dev), Ino: st.Ino}, nil
}

// SameFile reports whether a and b name the same file.
//
// Both existing: true when they share device and inode.
// Exactly one existing: false.
// Neither existing: an error satisfying errors.Is(err, fs.ErrNotExist).
func SameFile(a, b string) (bool, error) {
	idA, okA, err := identifyIfExists(a)
	if err != nil {
		return false, err
	}
	idB, okB, err := identifyIfExists(b)
	if err != nil {
		return false, err
	}

	switch {
	case okA && okB:
		return idA == idB, nil
	case !okA && !okB:
		return false, errors.Wrapf(fs.ErrNotExist, "neither %s nor %s exists", a, b)
	default:
		return false, nil
	}
}

func identifyIfExists(path string) (FileID, bool, error) {
	id, err := Identify(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileID{}, false, nil
		}
		return FileID{}, false, err
	}
	return id, true, nil
}
