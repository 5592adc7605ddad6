package sefazwatch

import (
	"errors"
	"log/slog"
	"strings"
	"time"
)

// checkerConfig holds mutable state during Checker construction.
type checkerConfig struct {
	store           StateStore
	notifier        Notifier
	logger          *slog.Logger
	tableClass      string
	timeout         time.Duration
	userAgent       string
	headers         map[string]string
	group           string
	replayPending   bool
	recorder        Recorder
	metrics         MetricsPublisher
	changeCallbacks []func(ChangeEvent)
}

// Option configures a [Checker] during construction.
//
// Options return an error if validation fails.
type Option func(*checkerConfig) error

// WithStore sets where region state is kept between cycles.
//
// Defaults to a JSON file named contingencias.json in the working directory.
func WithStore(s StateStore) Option {
	return func(cfg *checkerConfig) error {
		if s == nil {
			return errors.New("store cannot be nil")
		}
		cfg.store = s
		return nil
	}
}

// WithNotifier sets the channel (or set of channels) that receives change
// notifications.
//
// Without a notifier, changes are persisted and logged but not delivered,
// and stay pending for a later replay.
func WithNotifier(n Notifier) Option {
	return func(cfg *checkerConfig) error {
		if n == nil {
			return errors.New("notifier cannot be nil")
		}
		cfg.notifier = n
		return nil
	}
}

// WithLogger sets a custom [slog.Logger]. If not specified, [slog.Default]
// is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *checkerConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithTableClass sets the class attribute that identifies the status table.
// Defaults to [DefaultTableClass].
func WithTableClass(class string) Option {
	return func(cfg *checkerConfig) error {
		if strings.TrimSpace(class) == "" {
			return errors.New("table class cannot be empty")
		}
		cfg.tableClass = class
		return nil
	}
}

// WithTimeout sets the fetch timeout. Defaults to 30 seconds.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *checkerConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent with the fetch.
func WithUserAgent(ua string) Option {
	return func(cfg *checkerConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithHeaders adds request headers to the fetch as key-value pairs.
//
// Example:
//
//	sefazwatch.WithHeaders("Accept-Language", "pt-BR")
//
// Returns an error if an odd number of arguments is given.
func WithHeaders(keyValues ...string) Option {
	return func(cfg *checkerConfig) error {
		if len(keyValues)%2 != 0 {
			return errors.New("WithHeaders requires an even number of arguments (key-value pairs)")
		}
		for i := 0; i < len(keyValues); i += 2 {
			cfg.headers[keyValues[i]] = keyValues[i+1]
		}
		return nil
	}
}

// WithGroup sets the group string sent with every notification, such as a
// role mention. Empty by default.
func WithGroup(group string) Option {
	return func(cfg *checkerConfig) error {
		cfg.group = group
		return nil
	}
}

// WithReplayPending makes each cycle re-send changes from earlier cycles
// whose notification was never delivered.
func WithReplayPending(enabled bool) Option {
	return func(cfg *checkerConfig) error {
		cfg.replayPending = enabled
		return nil
	}
}

// WithRecorder sets a [Recorder] that receives every notified change.
func WithRecorder(r Recorder) Option {
	return func(cfg *checkerConfig) error {
		cfg.recorder = r
		return nil
	}
}

// WithMetrics sets a [MetricsPublisher] called at the end of every cycle.
func WithMetrics(m MetricsPublisher) Option {
	return func(cfg *checkerConfig) error {
		cfg.metrics = m
		return nil
	}
}

// WithChangeCallback registers a function called for every change after its
// notification was attempted.
//
// Multiple callbacks run in registration order. Panics within callbacks are
// recovered and logged. Nil callbacks are ignored.
func WithChangeCallback(cb func(ChangeEvent)) Option {
	return func(cfg *checkerConfig) error {
		if cb == nil {
			return nil
		}
		cfg.changeCallbacks = append(cfg.changeCallbacks, cb)
		return nil
	}
}
