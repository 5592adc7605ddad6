// Package history keeps a log of region status changes in SQLite.
//
// Every change a check cycle notifies is appended as one [Entry], together
// with the run that saw it and whether a channel accepted the notification.
// The log is append-only and independent from the state file: losing it
// never affects change detection.
//
// The database is opened with the modernc.org/sqlite driver (pure Go, no
// cgo), in WAL mode with a busy timeout, so the CLI can read the log while a
// scheduled run is writing to it.
package history
