package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/google/uuid"
)

// Dispatcher sends every message to a fixed set of channels.
//
// Channels are tried in order, one after the other. A failure or panic in
// one channel is logged and never prevents delivery to the next.
//
// Dispatcher itself implements [Notifier], so it can be used wherever a
// single channel is expected.
type Dispatcher struct {
	notifiers []Notifier
	logger    *slog.Logger
}

// NewDispatcher creates a [Dispatcher] over the given channels.
// A nil logger uses slog.Default().
func NewDispatcher(logger *slog.Logger, notifiers ...Notifier) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		notifiers: notifiers,
		logger:    logger,
	}
}

// Name returns "dispatcher".
func (d *Dispatcher) Name() string {
	return "dispatcher"
}

// Enabled reports whether at least one channel is enabled.
func (d *Dispatcher) Enabled() bool {
	for _, n := range d.notifiers {
		if n.Enabled() {
			return true
		}
	}
	return false
}

// Channels returns the names of all channels, enabled or not.
func (d *Dispatcher) Channels() []string {
	names := make([]string, len(d.notifiers))
	for i, n := range d.notifiers {
		names[i] = n.Name()
	}
	return names
}

// Send delivers the message to every channel.
//
// Send returns nil when at least one enabled channel accepted the message,
// or when no channel is enabled at all (nothing could be delivered, and
// that is a configuration choice rather than a failure). When every enabled
// channel failed, the joined errors are returned.
func (d *Dispatcher) Send(ctx context.Context, title, body, group string) error {
	var (
		enabled int
		errs    []error
	)

	for _, n := range d.notifiers {
		if !n.Enabled() {
			// disabled channels log their own skip
			_ = n.Send(ctx, title, body, group)
			continue
		}
		enabled++

		if err := d.sendSafe(ctx, n, title, body, group); err != nil {
			d.logger.Error("notification failed",
				"channel", n.Name(),
				"title", title,
				"error", err,
			)
			errs = append(errs, err)
			continue
		}
		d.logger.Info("notification sent", "channel", n.Name(), "title", title)
	}

	if enabled == 0 {
		d.logger.Warn("no notification channel enabled", "title", title)
		return nil
	}
	if len(errs) == enabled {
		return errors.Join(errs...)
	}
	return nil
}

// sendSafe calls Send with panic recovery. A panic is logged with a
// correlation ID and turned into an error.
func (d *Dispatcher) sendSafe(ctx context.Context, n Notifier, title, body, group string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			d.logger.Error("notifier panic",
				"channel", n.Name(),
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			err = &ErrSendFailed{
				Channel: n.Name(),
				Cause:   fmt.Errorf("notifier panic (correlation_id: %s)", correlationID),
			}
		}
	}()
	return n.Send(ctx, title, body, group)
}
