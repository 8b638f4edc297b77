package logging

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/thoreinstein/projkit/internal/errors"
)

// ColorMode selects when the text handler emits ANSI colors.
type ColorMode string

const (
	// ColorAuto colors terminals unless the environment says otherwise.
	ColorAuto ColorMode = "auto"
	// ColorAlways colors regardless of the writer or environment.
	ColorAlways ColorMode = "always"
	// ColorNever disables colors.
	ColorNever ColorMode = "never"
)

// ParseColorMode maps a --color flag value onto a ColorMode. Empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", errors.Newf("invalid color mode %q (valid: auto, always, never)", s)
	}
}

// IsTTY returns true if the given writer is a terminal.
// It supports os.File and any wrapper that provides an Fd() method.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// UseColor decides whether output to w should be colored under mode.
// In auto mode:
//   - NO_COLOR (any value) disables color
//   - FORCE_COLOR or CLICOLOR_FORCE (non-empty, not "0") enables it
//   - TERM=dumb disables it
//   - otherwise w must be a TTY
func UseColor(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	// https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	for _, k := range []string{"FORCE_COLOR", "CLICOLOR_FORCE"} {
		if v := os.Getenv(k); v != "" && v != "0" {
			return true
		}
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return IsTTY(w)
}
