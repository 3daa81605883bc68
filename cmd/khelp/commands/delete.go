package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/khelp/internal/ops"
	"github.com/thoreinstein/khelp/internal/store"
)

var (
	deleteForce   bool
	deleteCleanup bool
)

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation prompt")
	deleteCmd.Flags().BoolVar(&deleteCleanup, "cleanup", false,
		"also remove the context's cluster and user when nothing else references them")
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:     "delete [context]",
	Aliases: []string{"rm"},
	Short:   "Delete a context",
	Long: `Delete the named context. With no argument, pick one interactively.

With --cleanup, the context's cluster and user are removed too, unless a
remaining context still references them. Deleting the current context
moves current-context to the first remaining context by name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, cfg, err := loadKubeconfig()
		if err != nil {
			return err
		}

		name, err := contextArg(cfg, args, "Delete context")
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !deleteForce {
			prompt := fmt.Sprintf("Delete context %q?", name)
			if deleteCleanup {
				prompt = fmt.Sprintf("Delete context %q and its unreferenced cluster and user?", name)
			}
			if !confirm(cmd.InOrStdin(), out, prompt) {
				warnColor.Fprintln(out, "Aborted")
				return nil
			}
		}

		result, err := ops.Delete(cfg, name, deleteCleanup)
		if err != nil {
			return err
		}
		if err := store.Save(cmd.Context(), path, cfg); err != nil {
			return err
		}

		successColor.Fprintf(out, "Deleted context: %s\n", name)
		if len(result.RemovedClusters) > 0 {
			fmt.Fprintf(out, "Removed cluster(s): %s\n", joinNames(result.RemovedClusters))
		}
		if len(result.RemovedUsers) > 0 {
			fmt.Fprintf(out, "Removed user(s): %s\n", joinNames(result.RemovedUsers))
		}
		if result.CurrentReassigned {
			if result.NewCurrentContext != "" {
				fmt.Fprintf(out, "Current context is now: %s\n", result.NewCurrentContext)
			} else {
				dimColor.Fprintln(out, "No contexts remain; current-context cleared")
			}
		}
		return nil
	},
}
