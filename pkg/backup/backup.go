package backup

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/thoreinstein/projkit/internal/errors"
	"github.com/thoreinstein/projkit/pkg/fileutil"
)

// Suffix is appended to the original file name to form the first backup name.
const Suffix = ".bak"

// MaxBackups bounds the numeric suffix search.
const MaxBackups = 1 << 16

// Sentinel errors for backup operations.
var (
	// ErrNotRegular indicates the source is a directory or special file.
	ErrNotRegular = errors.New("not a regular file")

	// ErrNoFreeSlot indicates every name up to MaxBackups is taken.
	ErrNoFreeSlot = errors.New("no free backup name")
)

// Name returns the n-th backup name for path: n == 0 gives "<path>.bak",
// n > 0 gives "<path>.bak.<n>".
func Name(path string, n int) string {
	if n == 0 {
		return path + Suffix
	}
	return path + Suffix + "." + strconv.Itoa(n)
}

// Create copies path to the first free backup name and returns that name.
// The original is left untouched. Each candidate name is claimed with an
// exclusive create, so concurrent callers never write to the same backup.
func Create(path string) (string, error) {
	base := filepath.Base(path)
	if path == "" || base == "." || base == string(filepath.Separator) {
		return "", errors.Newf("invalid path %q", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Wrapf(err, "backing up %s", path)
	}
	if !info.Mode().IsRegular() {
		return "", errors.Wrapf(ErrNotRegular, "backing up %s", path)
	}

	for n := 0; n < MaxBackups; n++ {
		dst := Name(path, n)
		err := fileutil.CopyToNew(path, dst)
		if err == nil {
			return dst, nil
		}
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return "", errors.Wrapf(err, "backing up %s to %s", path, dst)
	}
	return "", errors.Wrapf(ErrNoFreeSlot, "backing up %s", path)
}

// Existing returns the backups of path that are present on disk, in
// numeric order. Gaps end the scan, matching the order Create fills slots.
func Existing(path string) ([]string, error) {
	var found []string
	for n := 0; n < MaxBackups; n++ {
		name := Name(path, n)
		if _, err := os.Lstat(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				break
			}
			return found, errors.Wrapf(err, "checking %s", name)
		}
		found = append(found, name)
	}
	return found, nil
}
