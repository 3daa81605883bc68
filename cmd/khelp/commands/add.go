package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/khelp/internal/errors"
	"github.com/thoreinstein/khelp/internal/kubeconfig"
	"github.com/thoreinstein/khelp/internal/merge"
	"github.com/thoreinstein/khelp/internal/store"
	"github.com/thoreinstein/khelp/pkg/fileutil"
)

var (
	addRename    bool
	addOverwrite bool
	addSwitch    bool
)

func init() {
	addCmd.Flags().BoolVar(&addRename, "rename", false,
		"rename conflicting entries with an -imported suffix")
	addCmd.Flags().BoolVar(&addOverwrite, "overwrite", false,
		"overwrite conflicting entries in place")
	addCmd.Flags().BoolVar(&addSwitch, "switch", false,
		"switch to the imported context (only when exactly one was added)")
	addCmd.MarkFlagsMutuallyExclusive("rename", "overwrite")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:     "add FILE",
	Aliases: []string{"import"},
	Short:   "Import contexts from another kubeconfig",
	Long: `Merge the contexts, clusters, and users of another kubeconfig into
yours. Conflicting names are skipped by default; --rename inserts the
incoming entries under an -imported suffix and --overwrite replaces
yours in place. Renamed clusters and users keep their contexts wired up.

A file with clusters but no contexts gets a context synthesized from its
current-context, first cluster, and first user, so bare provider
downloads import cleanly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := loadImportSource(args[0])
		if err != nil {
			return err
		}

		policy := merge.PolicySkip
		switch {
		case addRename:
			policy = merge.PolicyRename
		case addOverwrite:
			policy = merge.PolicyOverwrite
		case appConfig != nil && appConfig.ImportPolicy != "":
			policy, err = merge.ParsePolicy(appConfig.ImportPolicy)
			if err != nil {
				return err
			}
		}

		path, target, err := loadKubeconfig()
		if err != nil {
			return err
		}

		merged, summary, err := merge.Import(target, source, merge.Options{
			Policy:        policy,
			SwitchToAdded: addSwitch,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !summary.HasChanges() {
			printImportSummary(out, summary)
			fmt.Fprintf(out, "\n%s Use %s to rename conflicting entries or %s to overwrite them.\n",
				accentColor.Sprint("Tip:"), warnColor.Sprint("--rename"), warnColor.Sprint("--overwrite"))
			return nil
		}

		if err := store.Save(cmd.Context(), path, merged); err != nil {
			return err
		}

		printImportSummary(out, summary)
		if summary.SwitchedTo != "" {
			successColor.Fprintf(out, "\nSwitched to context: %s\n", summary.SwitchedTo)
		} else if addSwitch {
			warnColor.Fprintln(out, "\nNot switching: the import did not add exactly one context")
		}
		return nil
	},
}

// loadImportSource reads and parses the external kubeconfig, then
// synthesizes a context when the file has clusters but no contexts.
func loadImportSource(path string) (*kubeconfig.Config, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	source, err := kubeconfig.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "kubeconfig %s", path)
	}

	if len(source.Contexts) == 0 && len(source.Clusters) > 0 &&
		source.CurrentContext != "" && len(source.Users) > 0 {
		source.Contexts = append(source.Contexts, kubeconfig.ContextEntry{
			Name: source.CurrentContext,
			Context: kubeconfig.ContextSpec{
				Cluster:   source.Clusters[0].Name,
				User:      source.Users[0].Name,
				Namespace: "default",
			},
		})
	}
	return source, nil
}

func printImportSummary(w io.Writer, summary *merge.Summary) {
	successColor.Fprintln(w, "Import Summary:")
	dimColor.Fprintln(w, "───────────────")

	printCollectionSummary(w, "context(s)", &summary.Contexts)
	printCollectionSummary(w, "cluster(s)", &summary.Clusters)
	printCollectionSummary(w, "user(s)", &summary.Users)
}

func printCollectionSummary(w io.Writer, kind string, s *merge.CollectionSummary) {
	if len(s.Added) > 0 {
		fmt.Fprintf(w, "%s Added %s: %s\n", successColor.Sprint("✓"), kind, joinNames(s.Added))
	}
	if len(s.Overwritten) > 0 {
		fmt.Fprintf(w, "%s Overwritten %s: %s\n", warnColor.Sprint("↻"), kind, joinNames(s.Overwritten))
	}
	for _, r := range s.Renamed {
		fmt.Fprintf(w, "%s Renamed %s: %s -> %s\n", accentColor.Sprint("»"), kind, r.Old, r.New)
	}
	if len(s.Skipped) > 0 {
		fmt.Fprintf(w, "%s Skipped %s: %s\n", dimColor.Sprint("−"), kind, joinNames(s.Skipped))
	}
}
