// Package sqlite provides a grid data source backed by a SQLite table.
//
// Edits apply to an in-memory view immediately so the grid stays responsive;
// a single background worker mirrors each transaction to the database inside
// its own SQL transaction. When a mirror write fails the failure is reported
// on Failures and every queued write from the same epoch is skipped, since the
// caller is expected to rewind those transactions. Resume then reloads the
// view from the database and starts a new epoch.
//
// Row order in the view follows rowid. Rows inserted between existing rows
// receive the next free rowid, so after a reload they sort to the end.
// Empty cells are stored as NULL.
package sqlite
