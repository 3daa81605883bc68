package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/khelp/internal/ops"
	"github.com/thoreinstein/khelp/internal/store"
)

func init() {
	rootCmd.AddCommand(switchCmd)
}

var switchCmd = &cobra.Command{
	Use:     "switch [context]",
	Aliases: []string{"use"},
	Short:   "Switch the current context",
	Long: `Set current-context to the named context. With no argument, pick one
interactively with a fuzzy finder.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, cfg, err := loadKubeconfig()
		if err != nil {
			return err
		}

		name, err := contextArg(cfg, args, "Switch to context")
		if err != nil {
			return err
		}

		if err := ops.Switch(cfg, name); err != nil {
			return err
		}
		if err := store.Save(cmd.Context(), path, cfg); err != nil {
			return err
		}

		successColor.Fprintf(cmd.OutOrStdout(), "Switched to context: %s\n", name)
		return nil
	},
}
