package commands

import (
	"encoding/json"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/khelp/internal/kubeconfig"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all contexts",
	Long: `List every context in the kubeconfig with its cluster, user, and
namespace. The current context is marked with an asterisk.`,
	RunE: runList,
}

// contextInfoJSON represents a context in JSON output format.
type contextInfoJSON struct {
	Name      string `json:"name"`
	Cluster   string `json:"cluster"`
	User      string `json:"user"`
	Namespace string `json:"namespace,omitempty"`
	Current   bool   `json:"current"`
}

func runList(cmd *cobra.Command, _ []string) error {
	_, cfg, err := loadKubeconfig()
	if err != nil {
		return err
	}
	return runListWithWriter(cmd.OutOrStdout(), cfg)
}

// runListWithWriter allows injecting a writer for testing.
func runListWithWriter(w io.Writer, cfg *kubeconfig.Config) error {
	if listJSON {
		infos := make([]contextInfoJSON, 0, len(cfg.Contexts))
		for i := range cfg.Contexts {
			c := cfg.Contexts[i]
			infos = append(infos, contextInfoJSON{
				Name:      c.Name,
				Cluster:   c.Context.Cluster,
				User:      c.Context.User,
				Namespace: c.Context.Namespace,
				Current:   c.Name == cfg.CurrentContext,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	if len(cfg.Contexts) == 0 {
		dimColor.Fprintln(w, "No contexts defined")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"", "NAME", "CLUSTER", "USER", "NAMESPACE"})

	for i := range cfg.Contexts {
		c := cfg.Contexts[i]
		marker := ""
		name := c.Name
		if c.Name == cfg.CurrentContext {
			marker = "*"
			name = text.FgGreen.Sprint(c.Name)
		}
		t.AppendRow(table.Row{marker, name, c.Context.Cluster, c.Context.User, c.Context.Namespace})
	}
	t.Render()
	return nil
}

// stdoutOrFile opens path for writing, with "-" and "" meaning stdout.
func stdoutOrFile(path string, fallback io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return fallback, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
