package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const stateFileMode = 0o644

// FileStore is a [Store] backed by a JSON file.
//
// The file holds one object keyed by region code, indented so it can be read
// and edited by hand. Saves go to a temporary file in the same directory that
// is then renamed over the target, so a crash mid-save leaves the previous
// content in place.
//
// FileStore assumes a single writer. Two processes saving at the same time
// will not corrupt the file, but the last rename wins.
type FileStore struct {
	path string
}

// NewFileStore creates a [FileStore] for the given path. The file does not
// need to exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the state file location.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads and decodes the state file.
//
// A missing or empty file yields an empty mapping.
func (f *FileStore) Load() (map[string]Record, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]Record{}, nil
	}

	var records map[string]Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", f.path, err)
	}
	if records == nil {
		records = map[string]Record{}
	}
	return records, nil
}

// Save encodes records and atomically replaces the state file.
//
// Parent directories are created as needed.
func (f *FileStore) Save(records map[string]Record) error {
	if records == nil {
		records = map[string]Record{}
	}

	// encoding/json writes map keys sorted, so unchanged state produces
	// an identical file
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	// remove the temp file on any failure below; after a successful rename
	// it no longer exists and Remove is a no-op
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Chmod(tmpName, stateFileMode); err != nil {
		return fmt.Errorf("failed to set state file mode: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
