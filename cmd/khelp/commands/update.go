package commands

import (
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/khelp/cmd"
	"github.com/thoreinstein/khelp/internal/errors"
)

// githubRepoSlug is the GitHub repository checked for releases.
const githubRepoSlug = "thoreinstein/khelp"

var updateApply bool

func init() {
	updateCmd.Flags().BoolVar(&updateApply, "apply", false,
		"download and replace the running binary")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a newer khelp release",
	Long: `Check GitHub for the latest khelp release. With --apply, download it
and replace the current binary.`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		currentVersion := cmd.Version
		// Development builds are not releases and don't follow semver.
		if currentVersion == "" || currentVersion == "dev" {
			return errors.NewUserError(
				errors.New("cannot update a development build"),
				"Install a released version first")
		}

		out := c.OutOrStdout()
		fmt.Fprintf(out, "Current version: %s\n", currentVersion)
		fmt.Fprintln(out, "Checking for updates...")

		updater, err := selfupdate.NewUpdater(selfupdate.Config{})
		if err != nil {
			return errors.Wrap(err, "creating updater")
		}

		ctx := c.Context()
		latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(githubRepoSlug))
		if err != nil {
			return errors.Wrap(err, "detecting latest version")
		}
		if !found {
			return errors.Newf("no release found for %s", githubRepoSlug)
		}

		if !latest.GreaterThan(currentVersion) {
			successColor.Fprintln(out, "Already up to date")
			return nil
		}

		fmt.Fprintf(out, "Found newer version: %s (published %s)\n", latest.Version(), latest.PublishedAt)

		if !updateApply {
			fmt.Fprintln(out, "Run with --apply to install it")
			return nil
		}

		exe, err := selfupdate.ExecutablePath()
		if err != nil {
			return errors.Wrap(err, "locating executable")
		}

		if err := updater.UpdateTo(ctx, latest, exe); err != nil {
			return errors.Wrap(err, "updating binary")
		}

		successColor.Fprintf(out, "Updated to version %s\n", latest.Version())
		return nil
	},
}
