package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/khelp/internal/ops"
	"github.com/thoreinstein/khelp/internal/store"
)

func init() {
	rootCmd.AddCommand(renameCmd)
}

var renameCmd = &cobra.Command{
	Use:   "rename OLD NEW",
	Short: "Rename a context",
	Long: `Rename a context, keeping its cluster and user references intact. When
the renamed context is current, current-context follows the new name.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, cfg, err := loadKubeconfig()
		if err != nil {
			return err
		}

		oldName, newName := args[0], args[1]
		if err := ops.Rename(cfg, oldName, newName); err != nil {
			return err
		}
		if err := store.Save(cmd.Context(), path, cfg); err != nil {
			return err
		}

		successColor.Fprintf(cmd.OutOrStdout(), "Renamed context: %s -> %s\n", oldName, newName)
		return nil
	},
}
