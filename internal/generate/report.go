package generate

import (
	"fmt"

	"go.uber.org/zap"

	"analytics-codegen/internal/diagnostic"
)

// Report summarizes one generation run.
type Report struct {
	// RunID identifies the run in logs.
	RunID string

	RowsRead    int
	RowsSkipped int
	// DuplicateRows counts exact duplicates that were not emitted twice.
	DuplicateRows int

	FunctionsAdded     int
	FunctionsUpdated   int
	FunctionsUnchanged int
	// RemovalCandidates are managed functions no longer generated. They are
	// left in the destination.
	RemovalCandidates []string

	Diagnostics diagnostic.Diagnostics

	// Changed is true when the destination content differs from what the
	// run produced.
	Changed bool
	// Written is true when the destination was replaced.
	Written bool
	// Aborted is true when a run-level error stopped the run. Err holds it.
	Aborted bool
	Err     error
}

// Failed reports whether the run aborted or recorded error diagnostics.
func (r *Report) Failed() bool {
	return r.Aborted || r.Diagnostics.HasErrors()
}

// FunctionsGenerated returns the number of functions in the generated set.
func (r *Report) FunctionsGenerated() int {
	return r.FunctionsAdded + r.FunctionsUpdated + r.FunctionsUnchanged
}

// Summary returns a one-line description of the run.
func (r *Report) Summary() string {
	status := "ok"

	switch {
	case r.Aborted:
		status = "aborted"
	case r.Written:
		status = "written"
	case !r.Changed:
		status = "up to date"
	}

	return fmt.Sprintf("%s: %d rows read, %d skipped, %d added, %d updated, %d unchanged, %d removal candidates",
		status, r.RowsRead, r.RowsSkipped, r.FunctionsAdded, r.FunctionsUpdated,
		r.FunctionsUnchanged, len(r.RemovalCandidates))
}

// Fields returns the report counters as structured log fields. The run id
// is not included; the run's logger already carries it.
func (r *Report) Fields() []zap.Field {
	fields := []zap.Field{
		zap.Int("rows_read", r.RowsRead),
		zap.Int("rows_skipped", r.RowsSkipped),
		zap.Int("duplicate_rows", r.DuplicateRows),
		zap.Int("functions_added", r.FunctionsAdded),
		zap.Int("functions_updated", r.FunctionsUpdated),
		zap.Int("functions_unchanged", r.FunctionsUnchanged),
		zap.Strings("removal_candidates", r.RemovalCandidates),
		zap.Int("diagnostics", r.Diagnostics.Len()),
		zap.Bool("changed", r.Changed),
		zap.Bool("written", r.Written),
	}

	if r.Err != nil {
		fields = append(fields, zap.Error(r.Err))
	}

	return fields
}

// abort records a run-level error. msg describes it without the line
// number, which the diagnostic carries separately.
func (r *Report) abort(code string, line int, msg string, err error) {
	r.Aborted = true
	r.Err = err
	r.Diagnostics.AddError(code, line, msg)
}
