package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/projkit/internal/errors"
)

func TestDoctor_HealthyConfig(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "Summary: ")
	assert.Contains(t, out, "0 warnings, 0 errors")
}

func TestDoctor_JSON(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "doctor", "--json")
	require.NoError(t, err)

	var report struct {
		Results []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	names := make([]string, len(report.Results))
	for i, r := range report.Results {
		names[i] = r.Name
	}
	assert.Contains(t, names, "config-values")
}

func TestDoctor_InvalidValues(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "projkit", "config.toml"), "version = 1\nlog_level = 'warn'\nlog_format = 'yaml'\neditor = ''\n")

	out, _, err := execute(t, root, "doctor")
	require.Error(t, err)
	assert.Equal(t, errors.ExitSystem, errors.Code(err))
	assert.Contains(t, out, "config-values")
	assert.Contains(t, out, "hint: Run: projkit config edit")
}

func TestDoctor_OtherProjectWarnings(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "myapp", "config.toml")
	writeFile(t, path, "name = 'x'\n")
	require.NoError(t, os.Chmod(path, 0o644))

	out, _, err := execute(t, root, "doctor", "myapp")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.Code(err))
	assert.Contains(t, out, "config-permissions")
	assert.NotContains(t, out, "config-values")
}

func TestDoctor_InvalidProjectName(t *testing.T) {
	_, _, err := execute(t, t.TempDir(), "doctor", "..")
	assert.Equal(t, errors.ExitUser, errors.Code(err))
}
