package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/khelp/internal/editor"
	"github.com/thoreinstein/khelp/internal/errors"
	"github.com/thoreinstein/khelp/internal/ops"
	"github.com/thoreinstein/khelp/internal/store"
)

func init() {
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit [context]",
	Short: "Edit a context in your editor",
	Long: `Open a single context, with its cluster and user, in your editor. The
rest of the kubeconfig stays out of view and out of reach. Saving the
file applies the changes; leaving it untouched aborts.

The context name cannot be changed here; use rename for that.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, cfg, err := loadKubeconfig()
		if err != nil {
			return err
		}

		name, err := contextArg(cfg, args, "Edit context")
		if err != nil {
			return err
		}

		view, err := ops.EditView(cfg, name)
		if err != nil {
			return err
		}

		tmpDir, err := os.MkdirTemp("", "khelp-edit-*")
		if err != nil {
			return errors.Wrap(err, "creating temp directory")
		}
		defer os.RemoveAll(tmpDir)

		tmpFile := filepath.Join(tmpDir, "context.yaml")
		if err := os.WriteFile(tmpFile, view, 0o600); err != nil {
			return errors.Wrap(err, "writing temp file")
		}

		out := cmd.OutOrStdout()
		dimColor.Fprintf(out, "Opening %s in %s\n", name, editor.Detect(editorOverride()))
		if err := editor.Open(tmpFile, editorOverride()); err != nil {
			return err
		}

		edited, err := os.ReadFile(tmpFile)
		if err != nil {
			return errors.Wrap(err, "reading edited file")
		}

		if ops.Unchanged(view, edited) {
			dimColor.Fprintln(out, "No changes made")
			return nil
		}

		if err := ops.ApplyEdit(cfg, name, edited); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := store.Save(cmd.Context(), path, cfg); err != nil {
			return err
		}

		successColor.Fprintf(out, "Updated context: %s\n", name)
		return nil
	},
}

// editorOverride returns the editor configured in khelp's own settings,
// if any. The environment fallback chain lives in the editor package.
func editorOverride() string {
	if appConfig != nil {
		return appConfig.Editor
	}
	return ""
}
