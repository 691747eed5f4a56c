// Command hierodecode drives the hierarchical phrase-based decoder from the
// command line: one-best translation, n-best listing, and a long-running
// HTTP server, all against the same Parameters/Weight/model wiring.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var logger *slog.Logger

func main() {
	var cfgPath string
	var jsonLogs bool
	var logLevel string

	root := &cobra.Command{
		Use:           "hierodecode",
		Short:         "Hierarchical phrase-based statistical machine translation decoder",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(jsonLogs, logLevel)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "YAML file with parameters/weight overrides")
	root.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit structured JSON logs instead of text")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "logging level (debug|info|warn|error)")

	root.AddCommand(
		newTranslateCmd(&cfgPath),
		newNBestCmd(&cfgPath),
		newServeCmd(&cfgPath),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(jsonLogs bool, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if jsonLogs {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
