// Package walk enumerates the files below a directory without recursion.
//
// Directories are kept on an explicit work list instead of the call stack, so
// arbitrarily deep trees cannot overflow the goroutine stack. Errors never
// reach the caller: an unreadable directory or entry is logged and skipped,
// and the walk carries on with what is left.
package walk

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thoreinstein/projkit/internal/logging"
	"github.com/thoreinstein/projkit/pkg/fileutil"
)

// Option configures a walk.
type Option func(*walker)

// WithLogger sets the logger that receives skip warnings.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *walker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

type walker struct {
	logger *slog.Logger
}

// Files applies fn to every non-directory reachable from root and returns
// the results in visitation order.
//
// Symlinks are followed: a link to a directory is walked, anything else
// (including a dangling link) is handed to fn. Each directory is listed at
// most once, keyed by device and inode, so symlink cycles terminate.
// The relative order of siblings is unspecified.
func Files[R any](root string, fn func(path string) R, opts ...Option) []R {
	w := walker{logger: slog.Default()}
	for _, opt := range opts {
		opt(&w)
	}

	var results []R
	visited := make(map[fileutil.FileID]struct{})
	stack := []string{root}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if id, err := fileutil.Identify(dir); err == nil {
			if _, seen := visited[id]; seen {
				w.logger.Debug("skipping directory already visited", "dir", dir)
				continue
			}
			visited[id] = struct{}{}
		}

		w.logger.Log(context.Background(), logging.LevelTrace, "listing directory", "dir", dir)

		// ReadDir returns the entries it managed to read alongside the error,
		// and drops entries that vanish while it reads.
		entries, err := os.ReadDir(dir)
		if err != nil {
			w.logger.Warn("ignoring error while listing directory",
				"dir", dir,
				"error", err)
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if w.isDir(path, entry) {
				stack = append(stack, path)
				continue
			}
			results = append(results, fn(path))
		}
	}

	return results
}

// Paths returns every non-directory reachable from root.
func Paths(root string, opts ...Option) []string {
	return Files(root, func(path string) string { return path }, opts...)
}

// isDir classifies an entry, following symlinks. A symlink whose target
// cannot be stat'ed is not a directory.
func (w *walker) isDir(path string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(path)
	if err != nil {
		w.logger.Debug("symlink target not reachable, treating as file",
			"path", path,
			"error", err)
		return false
	}
	return info.IsDir()
}
