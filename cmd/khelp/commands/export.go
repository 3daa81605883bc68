package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/khelp/internal/kubeconfig"
	"github.com/thoreinstein/khelp/internal/ops"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [context...]",
	Short: "Export contexts as a standalone kubeconfig",
	Long: `Build a self-contained kubeconfig holding the named contexts and the
clusters and users they reference. Shared entities appear once. The
export has no current-context, so the receiving side picks its own.

With no arguments, pick a context interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadKubeconfig()
		if err != nil {
			return err
		}

		names := args
		if len(names) == 0 {
			name, err := pickContext(cfg, "Export context")
			if err != nil {
				return err
			}
			names = []string{name}
		}

		exported, err := ops.Export(cfg, names)
		if err != nil {
			return err
		}

		data, err := kubeconfig.Marshal(exported)
		if err != nil {
			return err
		}

		w, closer, err := stdoutOrFile(exportOutput, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			closer()
			return err
		}
		if err := closer(); err != nil {
			return err
		}

		if exportOutput != "" && exportOutput != "-" {
			successColor.Fprintf(cmd.OutOrStdout(), "Exported %d context(s) to %s\n",
				len(exported.Contexts), exportOutput)
		}
		return nil
	},
}
