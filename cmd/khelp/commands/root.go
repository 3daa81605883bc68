// Package commands implements the CLI commands for khelp.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/khelp/cmd"
	"github.com/thoreinstein/khelp/internal/config"
	"github.com/thoreinstein/khelp/internal/errors"
	"github.com/thoreinstein/khelp/internal/kubeconfig"
	"github.com/thoreinstein/khelp/internal/logging"
	"github.com/thoreinstein/khelp/internal/paths"
	"github.com/thoreinstein/khelp/internal/store"
)

// kubeconfigFlag holds the value of the --kubeconfig flag.
var kubeconfigFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// appConfig holds the loaded application settings.
var appConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&kubeconfigFlag, "kubeconfig", "",
		"path to the kubeconfig file (default: $KUBECONFIG or ~/.kube/config)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("khelp version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	appConfig, configLoadErr = config.Load("")
}

var rootCmd = &cobra.Command{
	Use:   "khelp",
	Short: "Manage kubeconfig contexts without hand-editing YAML",
	Long: `khelp manages the contexts, clusters, and users in your kubeconfig.

It switches, renames, deletes, imports, exports, and edits contexts while
preserving every field it does not understand, so exec plugins, extensions,
and vendor-specific settings survive untouched. Every write goes through an
atomic replace with a .bak copy of the previous content.`,
	Example: `  # Show all contexts
  khelp list

  # Switch interactively
  khelp switch

  # Import contexts from a downloaded kubeconfig
  khelp add ~/Downloads/new-cluster.yaml --rename

  # Remove a context and whatever it alone references
  khelp delete old-context --cleanup`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		if configLoadErr != nil {
			return errors.Wrap(configLoadErr, "loading configuration")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		if v == 0 {
			if val, ok := os.LookupEnv("KHELP_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	logger := slog.New(logging.Fanout(handlers...))
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// kubeconfigPath resolves the managed file: the --kubeconfig flag wins,
// then $KUBECONFIG, then ~/.kube/config.
func kubeconfigPath() (string, error) {
	if kubeconfigFlag != "" {
		return kubeconfigFlag, nil
	}
	return paths.Kubeconfig()
}

// loadKubeconfig resolves the managed path and loads the document.
func loadKubeconfig() (string, *kubeconfig.Config, error) {
	path, err := kubeconfigPath()
	if err != nil {
		return "", nil, err
	}
	cfg, err := store.Load(path)
	if err != nil {
		return "", nil, err
	}
	return path, cfg, nil
}

// Execute runs the root command and maps the error to an exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil {
		rootCmd.PrintErrln("Error:", err.Error())
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
			rootCmd.PrintErrln(exitErr.Suggestion)
		}
	}
	return errors.ExitCode(err)
}
