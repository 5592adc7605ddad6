package sefazwatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"runtime/debug"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/sefazwatch/internal/notify"
	"github.com/jpalmerr/sefazwatch/internal/poller"
	"github.com/jpalmerr/sefazwatch/internal/store"
)

const defaultTimeout = 30 * time.Second

// DefaultStateFile is the state file used when no store is configured.
const DefaultStateFile = "contingencias.json"

// Notifier delivers one change notification. group is an optional prefix,
// such as a role mention, and may be empty.
//
// Notifiers that also implement Enabled() bool and report false are treated
// as not having delivered anything.
type Notifier interface {
	Send(ctx context.Context, title, body, group string) error
}

// Recorder keeps a log of notified changes.
type Recorder interface {
	RecordChange(ctx context.Context, runID string, ev ChangeEvent, delivered bool, at time.Time) error
}

// MetricsPublisher exports the outcome of a cycle. state is the state at the
// end of the cycle, or nil when it could not be loaded. err is the error
// returned by Check.
type MetricsPublisher interface {
	Publish(report *Report, state State, err error) error
}

// Checker runs check cycles against the status page.
//
// A Checker is created with [New] and runs one cycle per call to
// [Checker.Check]. It is not meant to run cycles concurrently: the state
// store assumes a single writer.
type Checker struct {
	url             string
	client          *poller.Client
	store           StateStore
	notifier        Notifier
	logger          *slog.Logger
	tableClass      string
	timeout         time.Duration
	headers         map[string]string
	group           string
	replayPending   bool
	recorder        Recorder
	metrics         MetricsPublisher
	changeCallbacks []func(ChangeEvent)
}

// New creates a [Checker] for the status page at rawURL.
//
// Defaults:
//   - Store: JSON file contingencias.json
//   - Notifier: none (changes stay pending)
//   - Table class: tabelaResultado
//   - Timeout: 30 seconds
//
// Returns an error if the URL is not an absolute http or https URL, or if
// any option is invalid.
func New(rawURL string, opts ...Option) (*Checker, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.New("invalid URL: " + err.Error())
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, errors.New("URL must have a scheme (http:// or https://)")
	}
	if parsedURL.Host == "" {
		return nil, errors.New("URL must have a host")
	}

	cfg := &checkerConfig{
		tableClass: DefaultTableClass,
		timeout:    defaultTimeout,
		headers:    make(map[string]string),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	st := cfg.store
	if st == nil {
		st = store.NewFileStore(DefaultStateFile)
	}

	notifier := cfg.notifier
	if notifier == nil {
		notifier = notify.NewDispatcher(logger)
	}

	return &Checker{
		url:             rawURL,
		client:          poller.NewClient(cfg.userAgent),
		store:           st,
		notifier:        notifier,
		logger:          logger,
		tableClass:      cfg.tableClass,
		timeout:         cfg.timeout,
		headers:         cfg.headers,
		group:           cfg.group,
		replayPending:   cfg.replayPending,
		recorder:        cfg.recorder,
		metrics:         cfg.metrics,
		changeCallbacks: cfg.changeCallbacks,
	}, nil
}

// URL returns the status page URL.
func (c *Checker) URL() string {
	return c.url
}

// Close releases idle connections held by the fetch client.
func (c *Checker) Close() {
	c.client.Close()
}

// Check runs one cycle: fetch the page, extract the table, diff it against
// the stored state, save the new state and notify every change.
//
// The returned [Report] is never nil, even when an error is returned. The
// error wraps one of [ErrFetch], [ErrNoTableData], [ErrLoadState] or
// [ErrPersist]; in each of those cases the stored state is unchanged and no
// notification is sent. Malformed rows and notification failures are
// logged and counted in the report but do not fail the cycle.
func (c *Checker) Check(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	logger := c.logger.With("run_id", report.RunID)

	state, err := c.run(ctx, logger, report)
	report.Duration = time.Since(report.StartedAt)

	if c.metrics != nil {
		if perr := c.metrics.Publish(report, state, err); perr != nil {
			logger.Warn("failed to publish metrics", "error", perr)
		}
	}

	if err != nil {
		return report, err
	}

	logger.Info("check completed",
		"rows", report.Rows,
		"skipped", report.Skipped,
		"changes", len(report.Changes),
		"delivered", report.Delivered,
		"failed", report.Failed,
		"duration_ms", report.Duration.Milliseconds(),
	)
	return report, nil
}

// run performs the cycle and returns the state it ended with (nil when the
// state was never loaded).
func (c *Checker) run(ctx context.Context, logger *slog.Logger, report *Report) (State, error) {
	resp := c.client.Fetch(ctx, c.url, c.headers, c.timeout)
	if resp.Error != nil {
		err := &FetchError{URL: c.url, StatusCode: resp.StatusCode, Err: resp.Error}
		logger.Error("failed to fetch status page", "url", c.url, "error", resp.Error)
		return nil, err
	}
	if !resp.OK() {
		err := &FetchError{URL: c.url, StatusCode: resp.StatusCode, Err: errors.New("unexpected status")}
		logger.Error("failed to fetch status page", "url", c.url, "status_code", resp.StatusCode)
		return nil, err
	}
	logger.Debug("status page fetched",
		"status_code", resp.StatusCode,
		"bytes", len(resp.Body),
		"latency_ms", resp.Latency.Milliseconds(),
	)

	rows, err := ExtractRows(bytes.NewReader(resp.Body), c.tableClass)
	if err != nil {
		logger.Error("failed to extract status table", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrNoTableData, err)
	}
	if len(rows) == 0 {
		logger.Warn("no status table data in response", "table_class", c.tableClass)
		return nil, ErrNoTableData
	}

	// first row is the header
	rows = rows[1:]
	report.Rows = len(rows)

	previous, err := c.store.Load()
	if err != nil {
		logger.Error("failed to load state", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrLoadState, err)
	}

	result := Diff(rows, previous)
	for _, skipped := range result.Skipped {
		logger.Warn("skipping malformed row",
			"row", skipped.Index,
			"cells", len(skipped.Row),
			"error", skipped.Err,
		)
	}
	report.Skipped = len(result.Skipped)

	for _, ev := range result.Changes {
		logger.Info("region status changed",
			"region", ev.Region,
			"active", ev.Active,
			"first", ev.First,
		)
	}

	if err := c.store.Save(result.State); err != nil {
		logger.Error("failed to persist state", "error", err)
		return previous, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	events := result.Changes
	if c.replayPending {
		events = append(events, pendingEvents(result)...)
	}
	report.Changes = events

	state := result.State
	if dirty := c.notifyAll(ctx, logger, report, events, state); dirty {
		// the state above is already on disk; losing the flags only means
		// the notifications may be replayed
		if err := c.store.Save(state); err != nil {
			logger.Error("failed to persist notified flags", "error", err)
		}
	}

	return state, nil
}

// notifyAll sends one notification per event and marks delivered events as
// notified in state. It reports whether state was modified.
func (c *Checker) notifyAll(ctx context.Context, logger *slog.Logger, report *Report, events []ChangeEvent, state State) bool {
	enabled := notifierEnabled(c.notifier)
	dirty := false

	for _, ev := range events {
		delivered := false

		err := c.notifier.Send(ctx, ev.Title(), ev.Body(), c.group)
		switch {
		case err != nil:
			report.Failed++
			logger.Error("failed to send notification", "region", ev.Region, "error", err)
		case enabled:
			report.Delivered++
			delivered = true
			rec := state[ev.Region]
			rec.Notified = true
			state[ev.Region] = rec
			dirty = true
		default:
			logger.Debug("notification not delivered: no channel enabled", "region", ev.Region)
		}

		if c.recorder != nil {
			if err := c.recorder.RecordChange(ctx, report.RunID, ev, delivered, time.Now()); err != nil {
				logger.Warn("failed to record change", "region", ev.Region, "error", err)
			}
		}

		for _, cb := range c.changeCallbacks {
			invokeCallbackSafe(cb, ev, logger)
		}
	}

	return dirty
}

// pendingEvents rebuilds the events of regions whose last change was never
// notified and did not change again in this pass, sorted by region code.
func pendingEvents(result DiffResult) []ChangeEvent {
	changed := make(map[string]bool, len(result.Changes))
	for _, ev := range result.Changes {
		changed[ev.Region] = true
	}

	var codes []string
	for code, rec := range result.State {
		if !rec.Notified && !changed[code] {
			codes = append(codes, code)
		}
	}
	slices.Sort(codes)

	events := make([]ChangeEvent, 0, len(codes))
	for _, code := range codes {
		rec := result.State[code]
		name, ok := result.Names[code]
		if !ok {
			name = code
		}
		events = append(events, ChangeEvent{
			RegionName: name,
			Region:     code,
			Active:     rec.Active,
			Details:    rec.Details,
			Replay:     true,
		})
	}
	return events
}

// notifierEnabled reports whether n can deliver at all.
func notifierEnabled(n Notifier) bool {
	if e, ok := n.(interface{ Enabled() bool }); ok {
		return e.Enabled()
	}
	return true
}

// invokeCallbackSafe calls a change callback with panic recovery.
// Panics are logged with a correlation ID but do not propagate.
func invokeCallbackSafe(cb func(ChangeEvent), ev ChangeEvent, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("change callback panicked",
				"panic", r,
				"region", ev.Region,
				"correlation_id", uuid.NewString(),
				"stack", string(debug.Stack()),
			)
		}
	}()
	cb(ev)
}
