package sefazwatch

import (
	"time"

	"github.com/jpalmerr/sefazwatch/internal/store"
)

// ActiveMarker is the substring whose presence in the details cell marks a
// region as in contingency. The match is literal and case-sensitive.
const ActiveMarker = "Ativada"

// Row is one row of the status table: its text cells in document order.
//
// A usable row has at least five cells. Cell 1 holds the region name and
// cell 4 the contingency details.
type Row []string

// RegionRecord is the last known status of one region.
type RegionRecord = store.Record

// State maps region codes (e.g. "SP") to their last known status.
type State = map[string]RegionRecord

// StateStore loads and saves the [State] between cycles.
type StateStore = store.Store

// Observation is what one valid row says about a region.
type Observation struct {
	// RegionName is the full name from the page, e.g. "SP - São Paulo".
	RegionName string

	// Region is the first word of RegionName.
	Region string

	Details string
	Active  bool
}

// ChangeEvent describes a region whose contingency status changed, or that
// was seen for the first time.
type ChangeEvent struct {
	RegionName string
	Region     string
	Active     bool
	Details    string

	// PreviousDetails holds the stored details before the change. Empty for
	// new regions.
	PreviousDetails string

	// First marks a region that was not in the previous state.
	First bool

	// Replay marks a change from an earlier cycle whose notification was
	// never delivered.
	Replay bool
}

// Title returns the notification title for the change.
func (e ChangeEvent) Title() string {
	if e.Active {
		return "CONTINGÊNCIA ATIVADA PARA " + e.RegionName
	}
	return "CONTINGÊNCIA DESATIVADA PARA " + e.RegionName
}

// Body returns the notification body.
//
// When contingency ends the page usually no longer says what was active, so
// the previous details are shown instead when there are any.
func (e ChangeEvent) Body() string {
	if !e.Active && e.PreviousDetails != "" {
		return e.PreviousDetails
	}
	return e.Details
}

// Report summarises one check cycle.
type Report struct {
	// RunID identifies the cycle in logs and history.
	RunID string

	// Rows is the number of data rows extracted, header excluded.
	Rows int

	// Skipped is the number of malformed rows ignored.
	Skipped int

	// Changes lists the events notified during the cycle, replays included.
	Changes []ChangeEvent

	// Delivered and Failed count notification outcomes per event.
	Delivered int
	Failed    int

	StartedAt time.Time
	Duration  time.Duration
}
