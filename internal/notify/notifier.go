package notify

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"
)

// Platform names accepted by the CLI and the config file.
const (
	PlatformDiscord  = "discord"
	PlatformTelegram = "telegram"
	PlatformSlack    = "slack"
)

// Platforms lists every supported platform in display order.
var Platforms = []string{PlatformDiscord, PlatformTelegram, PlatformSlack}

// IsPlatform reports whether name is a supported platform.
func IsPlatform(name string) bool {
	return slices.Contains(Platforms, name)
}

const defaultSendTimeout = 10 * time.Second

// Notifier delivers a titled message to one external channel.
type Notifier interface {
	// Name returns the channel identifier (e.g. "discord").
	Name() string

	// Enabled reports whether the channel has the configuration it needs.
	Enabled() bool

	// Send delivers the message. group is an optional prefix such as a
	// role mention; it may be empty. Disabled channels return nil.
	Send(ctx context.Context, title, body, group string) error
}

// Option configures a channel at construction.
type Option func(*base)

// WithHTTPClient sets the HTTP client used to reach the platform.
func WithHTTPClient(c *http.Client) Option {
	return func(b *base) {
		if c != nil {
			b.client = c
		}
	}
}

// WithLogger sets the logger used for skip and delivery messages.
func WithLogger(l *slog.Logger) Option {
	return func(b *base) {
		if l != nil {
			b.logger = l
		}
	}
}

// base holds what every HTTP-backed channel needs.
type base struct {
	name   string
	client *http.Client
	logger *slog.Logger
}

func newBase(name string, opts []Option) base {
	b := base{
		name:   name,
		client: &http.Client{Timeout: defaultSendTimeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Name returns the channel identifier.
func (b base) Name() string {
	return b.name
}

func (b base) logSkip() {
	b.logger.Info("notification skipped: channel not configured", "channel", b.name)
}

// Nop is a [Notifier] that accepts every message and does nothing.
type Nop struct{}

func (Nop) Name() string                                 { return "nop" }
func (Nop) Enabled() bool                                { return true }
func (Nop) Send(_ context.Context, _, _, _ string) error { return nil }
