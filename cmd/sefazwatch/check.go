package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/sefazwatch"
	"github.com/jpalmerr/sefazwatch/config"
)

// checkCmd runs a single check cycle.
var checkCmd = &cobra.Command{
	Use:   "check [channel...]",
	Short: "Check the status page once and notify changes",
	Long: `Fetch the status page, compare every region with the state file and
send one notification per change.

Channels are discord, slack and telegram. Named channels override the
notify.channels setting; with neither, every channel is used. Channels
without credentials are skipped.

A cycle that fails to fetch the page, finds no status table or cannot
read or write the state file is logged and exits 0, leaving the state
file untouched so the next run tries again.

Example:
  sefazwatch check
  sefazwatch check discord telegram
  sefazwatch check -c /etc/sefazwatch/config.yaml`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("config", "c", "", "path to config file (default: read from environment)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat)

	notifier, err := config.BuildNotifier(cfg, args, logger)
	if err != nil {
		return err
	}
	if !notifier.Enabled() {
		logger.Warn("no notification channel is configured, changes will stay pending",
			"channels", notifier.Channels(),
		)
	}

	checker, cleanup, err := config.BuildChecker(cfg, notifier, logger)
	if err != nil {
		return fmt.Errorf("failed to create checker: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := checker.Check(ctx); err != nil {
		if sefazwatch.IsHandled(err) {
			// already logged by the checker; the next run retries
			return nil
		}
		return fmt.Errorf("check failed: %w", err)
	}
	return nil
}
