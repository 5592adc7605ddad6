// Package config provides YAML configuration parsing for sefazwatch.
//
// This package lets the sefazwatch binary be driven by a configuration file,
// as an alternative to wiring a [sefazwatch.Checker] in code.
//
// Example configuration:
//
//	url: https://www.nfe.fazenda.gov.br/portal/disponibilidade.aspx
//	timeout: 30s
//	state_file: /var/lib/sefazwatch/contingencias.json
//
//	notify:
//	  channels: [discord, telegram]
//	  group: "<@&123456>"
//	  discord:
//	    webhook_url: ${URL_WEBHOOK_DISCORD}
//	  telegram:
//	    bot_token: ${TELEGRAM_BOT_TOKEN}
//	    chat_id: ${TELEGRAM_CHAT_ID}
//
// String values support environment variable substitution with ${VAR} and
// ${VAR:-default}.
package config

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/sefazwatch"
	"github.com/jpalmerr/sefazwatch/internal/notify"
)

// minTimeout guards against a timeout too short to ever load the page.
const minTimeout = 1 * time.Second

// DefaultYAML is the configuration used when no file is given. Every value
// comes from the environment.
//
//go:embed default.yaml
var DefaultYAML []byte

// Config is the root configuration structure for sefazwatch.
//
// It maps directly to the YAML configuration file structure.
// Use [Load], [Parse] or [Default] to create a Config.
type Config struct {
	// URL is the status page URL. Required.
	URL string `yaml:"url"`

	// TableClass is the class attribute of the status table.
	// Defaults to "tabelaResultado".
	TableClass string `yaml:"table_class"`

	// Timeout bounds the page fetch. Defaults to 30s.
	Timeout Duration `yaml:"timeout"`

	// UserAgent overrides the User-Agent header sent with the fetch.
	UserAgent string `yaml:"user_agent"`

	// Headers are extra HTTP headers sent with the fetch.
	Headers map[string]string `yaml:"headers"`

	// StateFile is the JSON state file. Defaults to "contingencias.json".
	StateFile string `yaml:"state_file"`

	// HistoryDB is an optional SQLite file recording every change.
	HistoryDB string `yaml:"history_db"`

	// MetricsFile is an optional Prometheus textfile written after each run.
	MetricsFile string `yaml:"metrics_file"`

	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `yaml:"log_level"`

	// LogFormat is json or text. Defaults to json.
	LogFormat string `yaml:"log_format"`

	Notify NotifyConfig `yaml:"notify"`
}

// NotifyConfig configures the notification channels.
type NotifyConfig struct {
	// Channels is the default set of channels used when none are named on
	// the command line. Empty means every channel.
	Channels []string `yaml:"channels"`

	// Group is prepended to each message, typically a role mention.
	Group string `yaml:"group"`

	// ReplayPending resends changes whose earlier notification never went out.
	ReplayPending bool `yaml:"replay_pending"`

	Discord  WebhookConfig  `yaml:"discord"`
	Slack    WebhookConfig  `yaml:"slack"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// WebhookConfig configures a webhook-based channel. An empty URL disables it.
type WebhookConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

// TelegramConfig configures the Telegram channel. It is disabled unless both
// BotToken and ChatID are set.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`

	// APIURL defaults to https://api.telegram.org.
	APIURL string `yaml:"api_url"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in string values are expanded after parsing.
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Default parses [DefaultYAML]. It fails when SEFAZ_URL is not set.
func Default() (*Config, error) {
	return Parse(DefaultYAML)
}

// Parse parses YAML configuration data, applies defaults, expands
// environment variables and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables, fills defaults and
// validates the config.
func (c *Config) expandAndValidate() error {
	fields := []struct {
		name string
		ptr  *string
	}{
		{"url", &c.URL},
		{"table_class", &c.TableClass},
		{"user_agent", &c.UserAgent},
		{"state_file", &c.StateFile},
		{"history_db", &c.HistoryDB},
		{"metrics_file", &c.MetricsFile},
		{"log_level", &c.LogLevel},
		{"log_format", &c.LogFormat},
		{"notify.group", &c.Notify.Group},
		{"notify.discord.webhook_url", &c.Notify.Discord.WebhookURL},
		{"notify.slack.webhook_url", &c.Notify.Slack.WebhookURL},
		{"notify.telegram.bot_token", &c.Notify.Telegram.BotToken},
		{"notify.telegram.chat_id", &c.Notify.Telegram.ChatID},
		{"notify.telegram.api_url", &c.Notify.Telegram.APIURL},
	}
	for _, f := range fields {
		expanded, err := expandEnvVars(*f.ptr)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.ptr = strings.TrimSpace(expanded)
	}

	for k, v := range c.Headers {
		expanded, err := expandEnvVars(v)
		if err != nil {
			return fmt.Errorf("headers[%s]: %w", k, err)
		}
		c.Headers[k] = expanded
	}

	c.applyDefaults()

	if c.URL == "" {
		return fmt.Errorf("url is required")
	}
	if err := validateHTTPURL("url", c.URL); err != nil {
		return err
	}

	if c.Timeout.Duration() < minTimeout {
		return fmt.Errorf("timeout must be at least %s, got %s", minTimeout, c.Timeout.Duration())
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("log_format must be json or text, got %q", c.LogFormat)
	}

	seen := make(map[string]struct{}, len(c.Notify.Channels))
	for i, ch := range c.Notify.Channels {
		if !notify.IsPlatform(ch) {
			return fmt.Errorf("notify.channels[%d]: unknown channel %q (expected one of %s)",
				i, ch, strings.Join(notify.Platforms, ", "))
		}
		if _, dup := seen[ch]; dup {
			return fmt.Errorf("notify.channels[%d]: duplicate channel %q", i, ch)
		}
		seen[ch] = struct{}{}
	}

	for _, u := range []struct{ name, value string }{
		{"notify.discord.webhook_url", c.Notify.Discord.WebhookURL},
		{"notify.slack.webhook_url", c.Notify.Slack.WebhookURL},
		{"notify.telegram.api_url", c.Notify.Telegram.APIURL},
	} {
		if u.value == "" {
			continue
		}
		if err := validateHTTPURL(u.name, u.value); err != nil {
			return err
		}
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.TableClass == "" {
		c.TableClass = sefazwatch.DefaultTableClass
	}
	if c.Timeout == 0 {
		c.Timeout = Duration(30 * time.Second)
	}
	if c.StateFile == "" {
		c.StateFile = sefazwatch.DefaultStateFile
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.Notify.Telegram.APIURL == "" {
		c.Notify.Telegram.APIURL = notify.DefaultTelegramAPI
	}
}

func validateHTTPURL(field, raw string) error {
	parsedURL, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid url: %w", field, err)
	}
	if parsedURL.Scheme == "" {
		return fmt.Errorf("%s: url must have a scheme (http:// or https://)", field)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s: url scheme must be http or https, got %q", field, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s: url must have a host", field)
	}
	return nil
}
