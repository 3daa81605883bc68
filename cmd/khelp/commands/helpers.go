package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/khelp/internal/errors"
	"github.com/thoreinstein/khelp/internal/kubeconfig"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	dimColor     = color.New(color.Faint)
	accentColor  = color.New(color.FgCyan, color.Bold)
)

// confirm asks a yes/no question on the command's streams and returns
// the answer. Anything other than y/yes is no.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// pickContext runs the fuzzy finder over the document's contexts and
// returns the chosen name. An aborted selection is reported as a
// not-found error so callers exit cleanly.
func pickContext(cfg *kubeconfig.Config, header string) (string, error) {
	if len(cfg.Contexts) == 0 {
		return "", errors.Mark(errors.New("no contexts defined"), errors.ErrNotFound)
	}

	contexts := cfg.Contexts
	idx, err := fuzzyfinder.Find(
		contexts,
		func(i int) string {
			name := contexts[i].Name
			if name == cfg.CurrentContext {
				return name + " *"
			}
			return name
		},
		fuzzyfinder.WithHeader(header),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			c := contexts[i]
			ns := c.Context.Namespace
			if ns == "" {
				ns = "default"
			}
			return fmt.Sprintf("Context: %s\nCluster: %s\nUser: %s\nNamespace: %s",
				c.Name, c.Context.Cluster, c.Context.User, ns)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errors.Mark(errors.New("selection aborted"), errors.ErrNotFound)
		}
		return "", errors.Wrap(err, "interactive selection failed")
	}
	return contexts[idx].Name, nil
}

// contextArg returns the context named by args, falling back to the
// fuzzy finder when no argument was given.
func contextArg(cfg *kubeconfig.Config, args []string, header string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return pickContext(cfg, header)
}

// joinNames renders a name list for summaries.
func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
