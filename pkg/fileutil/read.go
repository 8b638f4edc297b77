package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/projkit/internal/errors"
)

// MaxFileSize is the maximum file size ReadFileWithLimit will read (1MB).
// Config files are hand-edited text; anything larger is a mistake.
const MaxFileSize = 1024 * 1024

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads a file up to MaxFileSize.
// It returns ErrFileTooLarge if the file is larger than the limit.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// fail fast on the common case
	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, errors.Wrap(ErrFileTooLarge, path)
	}

	// the file may grow between Stat and Read
	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if len(data) > MaxFileSize {
		return nil, errors.Wrap(ErrFileTooLarge, path)
	}

	return data, nil
}
