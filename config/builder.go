package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jpalmerr/sefazwatch"
	"github.com/jpalmerr/sefazwatch/internal/history"
	"github.com/jpalmerr/sefazwatch/internal/metrics"
	"github.com/jpalmerr/sefazwatch/internal/notify"
	"github.com/jpalmerr/sefazwatch/internal/store"
)

// BuildNotifier builds a dispatcher over the named channels.
//
// names are usually the positional arguments of the check command. When
// empty, cfg.Notify.Channels is used, and when that is empty too every
// channel is built. Channels without credentials are built anyway; they
// log and skip every send.
func BuildNotifier(cfg *Config, names []string, logger *slog.Logger) (*notify.Dispatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	selected := names
	if len(selected) == 0 {
		selected = cfg.Notify.Channels
	}
	if len(selected) == 0 {
		selected = notify.Platforms
	}

	opts := []notify.Option{notify.WithLogger(logger)}
	seen := make(map[string]struct{}, len(selected))
	var notifiers []notify.Notifier

	for _, name := range selected {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		switch name {
		case notify.PlatformDiscord:
			notifiers = append(notifiers, notify.NewDiscord(cfg.Notify.Discord.WebhookURL, opts...))
		case notify.PlatformSlack:
			notifiers = append(notifiers, notify.NewSlack(cfg.Notify.Slack.WebhookURL, opts...))
		case notify.PlatformTelegram:
			tg := cfg.Notify.Telegram
			notifiers = append(notifiers, notify.NewTelegram(tg.APIURL, tg.BotToken, tg.ChatID, opts...))
		default:
			return nil, fmt.Errorf("unknown channel %q (expected one of %s)", name, strings.Join(notify.Platforms, ", "))
		}
	}

	return notify.NewDispatcher(logger, notifiers...), nil
}

// BuildChecker converts parsed configuration into a [sefazwatch.Checker]
// that notifies through notifier.
//
// The returned cleanup closes the history database (if configured) and the
// checker's idle connections; it must be called once the checker is no
// longer used. On error, anything opened so far is already closed.
func BuildChecker(cfg *Config, notifier sefazwatch.Notifier, logger *slog.Logger) (*sefazwatch.Checker, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := []sefazwatch.Option{
		sefazwatch.WithLogger(logger),
		sefazwatch.WithStore(store.NewFileStore(cfg.StateFile)),
		sefazwatch.WithTableClass(cfg.TableClass),
		sefazwatch.WithTimeout(cfg.Timeout.Duration()),
		sefazwatch.WithGroup(cfg.Notify.Group),
		sefazwatch.WithReplayPending(cfg.Notify.ReplayPending),
	}

	if notifier != nil {
		opts = append(opts, sefazwatch.WithNotifier(notifier))
	}

	if cfg.UserAgent != "" {
		opts = append(opts, sefazwatch.WithUserAgent(cfg.UserAgent))
	}

	if len(cfg.Headers) > 0 {
		opts = append(opts, sefazwatch.WithHeaders(mapToKeyValuePairs(cfg.Headers)...))
	}

	var closers []func() error

	if cfg.HistoryDB != "" {
		rec, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return nil, nil, fmt.Errorf("history_db: %w", err)
		}
		closers = append(closers, rec.Close)
		opts = append(opts, sefazwatch.WithRecorder(rec))
	}

	if cfg.MetricsFile != "" {
		tf, err := metrics.NewTextfile(cfg.MetricsFile)
		if err != nil {
			closeAll(closers, logger)
			return nil, nil, fmt.Errorf("metrics_file: %w", err)
		}
		opts = append(opts, sefazwatch.WithMetrics(tf))
	}

	checker, err := sefazwatch.New(cfg.URL, opts...)
	if err != nil {
		closeAll(closers, logger)
		return nil, nil, err
	}

	cleanup := func() {
		checker.Close()
		closeAll(closers, logger)
	}
	return checker, cleanup, nil
}

func closeAll(closers []func() error, logger *slog.Logger) {
	var errs []error
	for _, c := range closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		logger.Warn("failed to close resources", "error", err)
	}
}

// mapToKeyValuePairs converts a map to a sorted slice of key-value pairs.
func mapToKeyValuePairs(m map[string]string) []string {
	// sort keys for deterministic ordering
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(m)*2)
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return pairs
}
