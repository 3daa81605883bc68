// Package editor launches the user's preferred text editor.
package editor

import (
	"os"
	"os/exec"

	"github.com/thoreinstein/khelp/internal/errors"
)

// Open launches an editor on the given path and blocks until it exits.
// The override, when non-empty, wins over the environment; otherwise
// the chain is $EDITOR, then $VISUAL, then nano, then vi. Failures are
// marked ErrEditor.
func Open(path, override string) error {
	editorCmd := Detect(override)

	cmd := exec.Command(editorCmd, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Mark(errors.Wrapf(err, "running editor %s", editorCmd), errors.ErrEditor)
	}
	return nil
}

// Detect returns the editor command to use. Fallback chain:
// override → $EDITOR → $VISUAL → nano → vi.
func Detect(override string) string {
	if override != "" {
		return override
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	// nano is easier on people who never learned vi
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	// POSIX fallback, present on all Unix systems
	return "vi"
}
