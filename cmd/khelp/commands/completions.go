package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/khelp/internal/errors"
)

func init() {
	rootCmd.AddCommand(completionsCmd)
}

var completionsCmd = &cobra.Command{
	Use:       "completions SHELL",
	Short:     "Generate shell completions",
	Long:      `Generate a completion script for bash, zsh, fish, or powershell.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		default:
			return errors.NewUserError(
				errors.Newf("unsupported shell %q", args[0]),
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}
