package commands

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/projkit/internal/logging"
)

// resetFlags restores every package-level flag variable to its default so
// command runs within one test binary do not leak into each other.
func resetFlags(t *testing.T) {
	t.Helper()
	verbosity, quiet, logFormat, logFile, configRoot = 0, false, "", "", ""
	colorFlag = string(logging.ColorAuto)
	showOutput, initForce = outputTOML, false
	walkPick, backupList = false, false
	doctorJSON, doctorVerbose = false, false
	tolerance = defaultTolerance
	cliProject, cliConfig = nil, nil

	prev := slog.Default()
	t.Cleanup(func() {
		closeLogFile()
		slog.SetDefault(prev)
	})
	for _, k := range []string{"PROJKIT_DEBUG", "PROJKIT_LOG_LEVEL", "PROJKIT_LOG_FORMAT", "PROJKIT_EDITOR"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

// execute runs the root command with args against a private config root and
// returns what it wrote to stdout and stderr.
func execute(t *testing.T, root string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(t)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(bytes.NewReader(nil))
	rootCmd.SetArgs(append([]string{"--config-root=" + root}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
