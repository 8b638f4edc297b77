package editor

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestDetectEditor_Override(t *testing.T) {
	t.Setenv("EDITOR", "nvim")

	got := detectEditor("hx")
	if got != "hx" {
		t.Errorf("detectEditor() = %q, want %q", got, "hx")
	}
}

func TestDetectEditor_BlankOverrideIgnored(t *testing.T) {
	t.Setenv("EDITOR", "nvim")

	got := detectEditor("   ")
	if got != "nvim" {
		t.Errorf("detectEditor() = %q, want %q", got, "nvim")
	}
}

func TestDetectEditor_EnvEditor(t *testing.T) {
	t.Setenv("EDITOR", "nvim")
	t.Setenv("VISUAL", "code")

	got := detectEditor("")
	if got != "nvim" {
		t.Errorf("detectEditor() = %q, want %q", got, "nvim")
	}
}

func TestDetectEditor_EnvVisual(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "code")

	got := detectEditor("")
	if got != "code" {
		t.Errorf("detectEditor() = %q, want %q", got, "code")
	}
}

func TestDetectEditor_FallbackNano(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	got := detectEditor("")

	// Should be nano if available, otherwise vi
	if _, err := exec.LookPath("nano"); err == nil {
		if got != "nano" {
			t.Errorf("detectEditor() = %q, want %q (nano available)", got, "nano")
		}
	} else {
		if got != "vi" {
			t.Errorf("detectEditor() = %q, want %q (nano not available)", got, "vi")
		}
	}
}

func TestOpen_RunsCommandWithPath(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("name = 'x'\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := Open(context.Background(), path, Options{Command: "cat", Stdout: &out})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := out.String(); got != "name = 'x'\n" {
		t.Errorf("editor output = %q", got)
	}
}

func TestOpen_CommandWithArguments(t *testing.T) {
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}

	var out bytes.Buffer
	err := Open(context.Background(), "file.toml", Options{Command: "echo --wait", Stdout: &out})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := out.String(); got != "--wait file.toml\n" {
		t.Errorf("editor output = %q, want %q", got, "--wait file.toml\n")
	}
}

func TestOpen_EditorFailure(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}

	err := Open(context.Background(), "file.toml", Options{Command: "false"})
	if err == nil {
		t.Fatal("Open() expected error from failing editor")
	}
}
