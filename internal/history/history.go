package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jpalmerr/sefazwatch"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const defaultLimit = 20

const busyTimeoutMillis = 10_000

const schema = `
CREATE TABLE IF NOT EXISTS changes (
	id               TEXT PRIMARY KEY,
	run_id           TEXT NOT NULL,
	region           TEXT NOT NULL,
	region_name      TEXT NOT NULL,
	active           INTEGER NOT NULL,
	details          TEXT NOT NULL,
	previous_details TEXT NOT NULL,
	is_first         INTEGER NOT NULL,
	is_replay        INTEGER NOT NULL,
	delivered        INTEGER NOT NULL,
	observed_at      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_changes_observed ON changes(observed_at);
CREATE INDEX IF NOT EXISTS idx_changes_region_observed ON changes(region, observed_at);
`

// Entry is one logged change.
type Entry struct {
	ID              string
	RunID           string
	Region          string
	RegionName      string
	Active          bool
	Details         string
	PreviousDetails string
	First           bool
	Replay          bool
	Delivered       bool
	ObservedAt      time.Time
}

// Filter narrows [Recorder.Recent].
type Filter struct {
	// Region keeps only entries for this region code. Empty means all.
	Region string

	// Limit caps the number of entries. Zero or negative means 20.
	Limit int
}

// Recorder appends changes to the log and reads them back.
type Recorder struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path. Parent
// directories are created. Use [MemoryPath] for a throwaway database.
func Open(path string) (*Recorder, error) {
	if path == "" {
		return nil, errors.New("history: empty database path")
	}

	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("history: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open: %w", err)
	}

	// a single connection keeps pragmas in effect and, for :memory:, keeps
	// every query on the same database
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeoutMillis),
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("history: %s: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: exec schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}

	return &Recorder{db: db}, nil
}

// Close closes the database.
func (r *Recorder) Close() error {
	return r.db.Close()
}

// Record appends e to the log. A missing ID is generated and a zero
// ObservedAt is set to now.
func (r *Recorder) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.ObservedAt.IsZero() {
		e.ObservedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO changes (
			id, run_id, region, region_name, active, details, previous_details,
			is_first, is_replay, delivered, observed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.RunID, e.Region, e.RegionName, e.Active, e.Details, e.PreviousDetails,
		e.First, e.Replay, e.Delivered, e.ObservedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("history: insert: %w", err)
	}
	return nil
}

// RecordChange logs a change notified by a check cycle.
func (r *Recorder) RecordChange(ctx context.Context, runID string, ev sefazwatch.ChangeEvent, delivered bool, at time.Time) error {
	return r.Record(ctx, Entry{
		RunID:           runID,
		Region:          ev.Region,
		RegionName:      ev.RegionName,
		Active:          ev.Active,
		Details:         ev.Details,
		PreviousDetails: ev.PreviousDetails,
		First:           ev.First,
		Replay:          ev.Replay,
		Delivered:       delivered,
		ObservedAt:      at,
	})
}

// Recent returns the latest entries, newest first.
func (r *Recorder) Recent(ctx context.Context, f Filter) ([]Entry, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, run_id, region, region_name, active, details, previous_details,
		       is_first, is_replay, delivered, observed_at
		FROM changes
		WHERE (? = '' OR region = ?)
		ORDER BY observed_at DESC, rowid DESC
		LIMIT ?`,
		f.Region, f.Region, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			observedAt int64
		)
		if err := rows.Scan(
			&e.ID, &e.RunID, &e.Region, &e.RegionName, &e.Active, &e.Details, &e.PreviousDetails,
			&e.First, &e.Replay, &e.Delivered, &observedAt,
		); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		e.ObservedAt = time.UnixMilli(observedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: rows: %w", err)
	}
	return entries, nil
}
