package store

import (
	"sync"
)

// MemoryStore is an in-memory implementation of [Store].
//
// MemoryStore is safe for concurrent use. Load and Save copy the mapping, so
// callers can mutate what they loaded without touching the stored state.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	saves   int
	failErr error
}

// NewMemoryStore creates a new in-memory [Store], seeded with a copy of
// initial (which may be nil).
func NewMemoryStore(initial map[string]Record) *MemoryStore {
	return &MemoryStore{
		records: copyRecords(initial),
	}
}

// Load returns a copy of the stored mapping.
func (m *MemoryStore) Load() (map[string]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return copyRecords(m.records), nil
}

// Save replaces the stored mapping with a copy of records.
//
// If a failure was injected with [MemoryStore.FailSaves], Save returns it and
// leaves the stored mapping untouched.
func (m *MemoryStore) Save(records map[string]Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return m.failErr
	}
	m.records = copyRecords(records)
	m.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// FailSaves makes every subsequent Save return err. Pass nil to recover.
func (m *MemoryStore) FailSaves(err error) {
	m.mu.Lock()
	m.failErr = err
	m.mu.Unlock()
}
