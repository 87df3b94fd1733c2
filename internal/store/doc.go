// Package store provides the durable reconfiguration history log.
//
// The log is append-only: every request the scheduler finishes, whether
// completed or failed, may be recorded here for audit. Programs are
// never persisted - the log holds outcomes, not sources.
//
// Uses SQLite with WAL mode for concurrent read access.
package store
