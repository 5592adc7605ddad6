package sefazwatch

import (
	"fmt"
	"maps"
	"strings"
)

// minCells is the number of cells a row needs to reach the details cell.
const minCells = 5

const (
	nameCell    = 1
	detailsCell = 4
)

// DiffResult is the outcome of comparing one page against the previous state.
type DiffResult struct {
	// Changes lists new and flipped regions in row order.
	Changes []ChangeEvent

	// State is the previous state with all changes applied.
	State State

	// Names maps each region code seen in this pass to its full name.
	Names map[string]string

	// Skipped lists the malformed rows that were ignored.
	Skipped []*RowError
}

// ParseRow reads the region status out of one data row.
//
// The error wraps [ErrRowMalformed] when the row has fewer than five cells
// or an empty region name.
func ParseRow(row Row) (Observation, error) {
	if len(row) < minCells {
		return Observation{}, fmt.Errorf("%w: %d cells, need %d", ErrRowMalformed, len(row), minCells)
	}

	name := row[nameCell]
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return Observation{}, fmt.Errorf("%w: empty region name", ErrRowMalformed)
	}

	details := row[detailsCell]
	return Observation{
		RegionName: name,
		Region:     fields[0],
		Details:    details,
		Active:     strings.Contains(details, ActiveMarker),
	}, nil
}

// Diff compares data rows (header removed) with the previous state.
//
// For every valid row, in order:
//   - an unknown region is added with Notified false and reported as First
//   - a known region whose active flag flipped gets the new flag and details,
//     Notified reset to false, and is reported with its previous details
//   - a known region with the same flag is left untouched
//
// When a region appears in several rows, each row is applied in turn, so the
// last one wins. Malformed rows are collected in Skipped and do not stop the
// pass. previous is never modified.
func Diff(rows []Row, previous State) DiffResult {
	next := make(State, len(previous))
	maps.Copy(next, previous)

	result := DiffResult{
		State: next,
		Names: make(map[string]string),
	}

	for i, row := range rows {
		obs, err := ParseRow(row)
		if err != nil {
			result.Skipped = append(result.Skipped, &RowError{Index: i, Row: row, Err: err})
			continue
		}
		result.Names[obs.Region] = obs.RegionName

		prev, known := next[obs.Region]
		if known && prev.Active == obs.Active {
			continue
		}

		next[obs.Region] = RegionRecord{Active: obs.Active, Details: obs.Details}
		result.Changes = append(result.Changes, ChangeEvent{
			RegionName:      obs.RegionName,
			Region:          obs.Region,
			Active:          obs.Active,
			Details:         obs.Details,
			PreviousDetails: prev.Details,
			First:           !known,
		})
	}

	return result
}
