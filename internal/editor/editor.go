// Package editor provides utilities for launching the user's preferred text editor.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/projkit/internal/errors"
)

// ErrNoEditor is returned when the editor command is blank.
var ErrNoEditor = errors.New("no editor configured")

// Options wires the editor process to the terminal. Nil streams default to
// the process's own stdin, stdout and stderr.
type Options struct {
	// Command overrides editor detection. It may carry arguments, e.g. "code --wait".
	Command string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// Open launches the user's preferred editor for the given path and waits for it to exit.
func Open(ctx context.Context, path string, opts Options) error {
	fields := strings.Fields(detectEditor(opts.Command))
	if len(fields) == 0 {
		return ErrNoEditor
	}

	args := append(fields[1:], path)
	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Stdin = orDefault(opts.Stdin, io.Reader(os.Stdin))
	cmd.Stdout = orDefault(opts.Stdout, io.Writer(os.Stdout))
	cmd.Stderr = orDefault(opts.Stderr, io.Writer(os.Stderr))

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %q", fields[0])
	}
	return nil
}

// detectEditor returns the editor command to use. Fallback chain:
// override → $EDITOR → $VISUAL → nano → vi
func detectEditor(override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}

	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	// vi is available on all Unix systems
	return "vi"
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
