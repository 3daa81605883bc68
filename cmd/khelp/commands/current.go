package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/khelp/internal/kubeconfig"
)

func init() {
	rootCmd.AddCommand(currentCmd)
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current context",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, cfg, err := loadKubeconfig()
		if err != nil {
			return err
		}
		return runCurrentWithWriter(cmd.OutOrStdout(), cfg)
	},
}

func runCurrentWithWriter(w io.Writer, cfg *kubeconfig.Config) error {
	if cfg.CurrentContext == "" {
		dimColor.Fprintln(w, "No current context set")
		return nil
	}
	fmt.Fprintln(w, cfg.CurrentContext)
	return nil
}
