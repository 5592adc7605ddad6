package sefazwatch

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch is returned when the status page could not be retrieved.
	ErrFetch = errors.New("fetch failed")

	// ErrNoTableData is returned when the page holds no status table rows.
	ErrNoTableData = errors.New("no status table data")

	// ErrRowMalformed marks a table row that cannot be read as a region
	// status. Such rows are skipped; they never end a cycle.
	ErrRowMalformed = errors.New("malformed status row")

	// ErrLoadState is returned when the previous state could not be loaded.
	ErrLoadState = errors.New("failed to load state")

	// ErrPersist is returned when the new state could not be saved. No
	// notification is sent in that case.
	ErrPersist = errors.New("failed to persist state")
)

// FetchError describes a failed page fetch. It matches [ErrFetch] with
// errors.Is.
type FetchError struct {
	URL string

	// StatusCode is the HTTP status received, or zero when the request
	// failed before a response.
	StatusCode int

	Err error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is reports whether target is [ErrFetch].
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// RowError describes a skipped table row.
type RowError struct {
	// Index is the row position among data rows (header excluded).
	Index int
	Row   Row
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Index, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// IsHandled reports whether err is one of the outcomes a cycle is expected
// to run into now and then: the page was unreachable, had no table, or the
// state file could not be read or written. The next run simply tries again.
func IsHandled(err error) bool {
	return errors.Is(err, ErrFetch) ||
		errors.Is(err, ErrNoTableData) ||
		errors.Is(err, ErrLoadState) ||
		errors.Is(err, ErrPersist)
}
