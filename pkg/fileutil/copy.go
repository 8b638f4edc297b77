package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/projkit/internal/errors"
)

// CopyFile copies the regular file src to dst, creating or truncating dst.
// The destination gets the permission bits of src.
func CopyFile(src, dst string) error {
	return copyFile(src, dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// CopyToNew copies src to dst, failing if dst already exists.
// The existence check and creation are a single atomic open, so the error
// satisfies errors.Is(err, fs.ErrExist) when another file claimed dst first.
func CopyToNew(src, dst string) error {
	return copyFile(src, dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
}

func copyFile(src, dst string, flag int) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "opening source")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.Wrap(err, "stat source")
	}
	if !info.Mode().IsRegular() {
		return errors.Newf("%s is not a regular file", src)
	}

	out, err := os.OpenFile(dst, flag, info.Mode().Perm())
	if err != nil {
		return errors.Wrap(err, "creating destination")
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "closing destination")
		}
		// never leave a partial copy behind
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrap(err, "copying contents")
	}
	if err := out.Sync(); err != nil {
		return errors.Wrap(err, "syncing destination")
	}
	return nil
}
