// Package generate runs the pipeline for one input source and one
// destination file: ingest, resolve, name, render, merge and write.
//
// Row-level problems are recorded as diagnostics and the row is skipped.
// Run-level problems (name collisions, unreadable or malformed destination,
// write failures, cancellation) abort the run before the destination is
// replaced. Run always returns a Report.
package generate
