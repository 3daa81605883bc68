package editor

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/thoreinstein/khelp/internal/errors"
)

func TestDetect_Override(t *testing.T) {
	t.Setenv("EDITOR", "nvim")

	got := Detect("code")
	if got != "code" {
		t.Errorf("Detect() = %q, want %q", got, "code")
	}
}

func TestDetect_EnvEditor(t *testing.T) {
	t.Setenv("EDITOR", "nvim")
	t.Setenv("VISUAL", "code")

	got := Detect("")
	if got != "nvim" {
		t.Errorf("Detect() = %q, want %q", got, "nvim")
	}
}

func TestDetect_EnvVisual(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "code")

	got := Detect("")
	if got != "code" {
		t.Errorf("Detect() = %q, want %q", got, "code")
	}
}

func TestDetect_Fallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	got := Detect("")
	if _, err := exec.LookPath("nano"); err == nil {
		if got != "nano" {
			t.Errorf("Detect() = %q, want nano (available)", got)
		}
	} else if got != "vi" {
		t.Errorf("Detect() = %q, want vi (nano not available)", got)
	}
}

func TestOpen_Integration(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping integration test on windows (uses shell script mock)")
	}

	tmpDir := t.TempDir()
	mockEditor := filepath.Join(tmpDir, "mock-editor.sh")
	outputFile := filepath.Join(tmpDir, "output.txt")

	script := "#!/bin/sh\necho \"$@\" > " + outputFile + "\n"
	if err := os.WriteFile(mockEditor, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	t.Setenv("EDITOR", mockEditor)

	targetFile := filepath.Join(tmpDir, "target.txt")
	if err := os.WriteFile(targetFile, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Open(targetFile, ""); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	got, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), targetFile) {
		t.Errorf("mock editor output = %q, want it to contain %q", string(got), targetFile)
	}
}

func TestOpen_MissingEditor(t *testing.T) {
	t.Setenv("EDITOR", "non-existent-binary-12345")
	t.Setenv("VISUAL", "")

	err := Open("test.txt", "")
	if err == nil {
		t.Fatal("expected error for non-existent editor, got nil")
	}
	if !errors.Is(err, errors.ErrEditor) {
		t.Errorf("error %v is not marked ErrEditor", err)
	}
}
