// Package store persists the last known contingency state per region.
//
// This package is internal to sefazwatch. The state is a mapping from
// region code to a [Record] and is always loaded and saved as a whole.
//
// The main components are:
//
//   - [Store]: Interface defining the load/save contract
//   - [FileStore]: JSON file on disk, replaced atomically on every save
//   - [MemoryStore]: In-memory implementation for tests and embedding
//
// A missing state file is not an error: it loads as an empty mapping, which
// is how the very first run starts.
package store
