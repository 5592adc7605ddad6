// Package main is the entry point for the sefazwatch CLI.
//
// sefazwatch is meant to be run from cron or a systemd timer: every
// invocation of check is one complete cycle.
//
// Usage:
//
//	sefazwatch check                      # notify every configured channel
//	sefazwatch check discord telegram     # notify only these channels
//	sefazwatch check -c sefazwatch.yaml   # use a config file
//	sefazwatch validate -c sefazwatch.yaml
//	sefazwatch history --region SP
//	sefazwatch version
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/sefazwatch/config"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "sefazwatch",
	Short: "Watch SEFAZ contingency status and notify on changes",
	Long: `sefazwatch reads the SEFAZ availability page, keeps the contingency
status of every region in a state file and sends a notification to
Discord, Slack and/or Telegram whenever a region enters or leaves
contingency.

Quick start:
  1. export SEFAZ_URL=https://...
  2. export URL_WEBHOOK_DISCORD=https://discord.com/api/webhooks/...
  3. Run sefazwatch check from cron, e.g. every 5 minutes

Without -c, configuration is read from the environment:
  SEFAZ_URL, CONTINGENCIAS_FILE, URL_WEBHOOK_DISCORD, SLACK_WEBHOOK_URL,
  TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID, NOTIFY_GROUP`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this sefazwatch binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sefazwatch %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// newLogger creates the CLI logger on stderr. level and format come from a
// validated config, so unknown values fall back to info and json.
func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// loadConfig reads the file named by the --config flag, or the built-in
// environment-driven config when the flag is empty.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		return config.Default()
	}
	return config.Load(configFile)
}
