// Package cmd contains build-time variables injected via ldflags.
package cmd

import "fmt"

// Build-time variables set via ldflags, e.g.
//
//	-ldflags "-X github.com/thoreinstein/projkit/cmd.Version=v0.3.0"
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info renders the build metadata as a multi-line block.
func Info(prog string) string {
	return fmt.Sprintf("%s version %s\n  commit: %s\n  built:  %s\n", prog, Version, Commit, Date)
}
