package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/khelp/internal/kubeconfig"
	"github.com/thoreinstein/khelp/internal/ops"
	"github.com/thoreinstein/khelp/internal/store"
)

var cleanupForce bool

func init() {
	cleanupCmd.Flags().BoolVarP(&cleanupForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(cleanupCmd)
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove orphaned clusters and users",
	Long: `Remove every cluster and user no context references. The operation is
idempotent: running it again removes nothing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, cfg, err := loadKubeconfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		orphanClusters, orphanUsers := kubeconfig.Orphans(cfg)
		if len(orphanClusters) == 0 && len(orphanUsers) == 0 {
			successColor.Fprintln(out, "Nothing to clean up")
			return nil
		}

		if len(orphanClusters) > 0 {
			fmt.Fprintf(out, "Orphaned cluster(s): %s\n", joinNames(orphanClusters))
		}
		if len(orphanUsers) > 0 {
			fmt.Fprintf(out, "Orphaned user(s): %s\n", joinNames(orphanUsers))
		}

		if !cleanupForce && !confirm(cmd.InOrStdin(), out, "Remove them?") {
			warnColor.Fprintln(out, "Aborted")
			return nil
		}

		removedClusters, removedUsers := ops.Cleanup(cfg)
		if err := store.Save(cmd.Context(), path, cfg); err != nil {
			return err
		}

		successColor.Fprintf(out, "Removed %d cluster(s) and %d user(s)\n",
			len(removedClusters), len(removedUsers))
		return nil
	},
}
