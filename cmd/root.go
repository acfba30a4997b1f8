package cmd

import (
	"fmt"
	"os"

	"mention-scanner/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "mention-scanner",
	Short: "Game Entity Mention Scanner",
	Long: `Mention Scanner detects card, potion, and relic mentions in free text.
It keeps the entity catalog synchronized from the wiki and serves a fuzzy
name-resolution API over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting.
		// Console format matches CLI expectations, and the debug-level config
		// gives ISO8601 timestamps instead of epoch.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
