package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/sefazwatch/config"
	"github.com/jpalmerr/sefazwatch/internal/notify"
)

// validateCmd validates a config file without fetching anything.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a sefazwatch configuration without running a check.

This command parses the YAML, expands environment variables, and validates
all fields. Without -c it validates the configuration built from the
environment.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  sefazwatch validate -c config.yaml
  SEFAZ_URL=https://... sefazwatch validate`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (default: read from environment)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	channels := cfg.Notify.Channels
	if len(channels) == 0 {
		channels = notify.Platforms
	}
	var configured []string
	for _, ch := range channels {
		if channelConfigured(cfg.Notify, ch) {
			configured = append(configured, ch)
		}
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  URL:         %s\n", cfg.URL)
	fmt.Printf("  Table class: %s\n", cfg.TableClass)
	fmt.Printf("  Timeout:     %s\n", cfg.Timeout.Duration())
	fmt.Printf("  State file:  %s\n", cfg.StateFile)
	fmt.Printf("  History DB:  %s\n", orNone(cfg.HistoryDB))
	fmt.Printf("  Metrics:     %s\n", orNone(cfg.MetricsFile))
	fmt.Printf("  Channels:    %s (configured: %s)\n",
		strings.Join(channels, ", "), orNone(strings.Join(configured, ", ")))

	return nil
}

// channelConfigured reports whether ch has the credentials it needs to send.
func channelConfigured(n config.NotifyConfig, ch string) bool {
	switch ch {
	case notify.PlatformDiscord:
		return n.Discord.WebhookURL != ""
	case notify.PlatformSlack:
		return n.Slack.WebhookURL != ""
	case notify.PlatformTelegram:
		return n.Telegram.BotToken != "" && n.Telegram.ChatID != ""
	}
	return false
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
