package generate

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"analytics-codegen/internal/diagnostic"
	"analytics-codegen/internal/emit"
	"analytics-codegen/internal/ingest"
	"analytics-codegen/internal/merge"
	"analytics-codegen/internal/naming"
	"analytics-codegen/internal/resolve"
	"analytics-codegen/internal/taxonomy"
)

// Options configure a Driver.
type Options struct {
	// Prefix starts every function name. Empty means naming.DefaultPrefix.
	Prefix string
	// Resolve configures row validation.
	Resolve resolve.Options
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{Prefix: naming.DefaultPrefix, Resolve: resolve.DefaultOptions()}
}

// Driver runs generation. Registry and Emitter are required. At most one run
// per destination file may be in flight at a time; the driver does not lock.
type Driver struct {
	Registry *taxonomy.Registry
	Emitter  emit.Emitter
	Options  Options
	Logger   *zap.Logger
}

// Run consumes rows, merges the generated functions into dest and, unless
// dryRun is set, atomically replaces dest when its content changes.
func (d *Driver) Run(ctx context.Context, rows iter.Seq2[ingest.RawRow, error], dest string, dryRun bool) *Report {
	report := &Report{RunID: uuid.NewString()}

	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	logger = logger.With(zap.String("run_id", report.RunID), zap.String("destination", dest))
	logger.Debug("Starting generation", zap.String("language", d.Emitter.Language()), zap.Bool("dry_run", dryRun))

	funcs := d.collect(ctx, rows, report, logger)
	if report.Aborted {
		logger.Info("Generation aborted", report.Fields()...)
		return report
	}

	d.merge(ctx, funcs, dest, dryRun, report, logger)

	if report.Aborted {
		logger.Info("Generation aborted", report.Fields()...)
	} else {
		logger.Info("Generation finished", report.Fields()...)
	}

	return report
}

// collect turns rows into the ordered set of functions to generate.
func (d *Driver) collect(
	ctx context.Context,
	rows iter.Seq2[ingest.RawRow, error],
	report *Report,
	logger *zap.Logger,
) []naming.GeneratedFunction {
	resolver := resolve.New(d.Registry, d.Options.Resolve)
	synth := naming.Synthesizer{Prefix: d.Options.Prefix, Registry: d.Registry}

	used := make(map[string]resolve.EventSpec)

	var funcs []naming.GeneratedFunction

	for row, err := range rows {
		if ctxErr := ctx.Err(); ctxErr != nil {
			report.abort(diagnostic.CodeCanceled, 0, "generation canceled", ctxErr)
			return nil
		}

		if err != nil {
			var malformed *ingest.MalformedInputError
			if errors.As(err, &malformed) {
				report.RowsRead++
				report.RowsSkipped++
				report.Diagnostics.AddError(diagnostic.CodeMalformedInput, malformed.Line, malformed.Reason)

				continue
			}

			report.abort(diagnostic.CodeMalformedInput, 0, fmt.Sprintf("reading input: %v", err), err)

			return nil
		}

		report.RowsRead++

		spec, diags, err := resolver.Resolve(row)
		report.Diagnostics.Add(diags...)

		if err != nil {
			report.RowsSkipped++
			report.Diagnostics.Add(rowDiagnostic(row.Line, err))

			continue
		}

		name, err := synth.Synthesize(spec, used)

		var collision *naming.CollisionError

		switch {
		case errors.Is(err, naming.ErrDuplicate):
			report.DuplicateRows++
			report.Diagnostics.AddInfo(diagnostic.CodeDuplicateRow, row.Line,
				fmt.Sprintf("row duplicates line %d, %s is generated once", used[name].Line, name))

			continue
		case errors.As(err, &collision):
			report.abort(diagnostic.CodeNameCollision, collision.Line,
				fmt.Sprintf("function name %s is also produced by the different event on line %d",
					collision.Name, collision.FirstLine), err)

			return nil
		case err != nil:
			report.abort(diagnostic.CodeNameCollision, row.Line, err.Error(), err)
			return nil
		}

		used[name] = spec
		funcs = append(funcs, naming.Function(name, spec))

		logger.Debug("Resolved row", zap.Int("line", row.Line), zap.String("function", name))
	}

	logger.Debug("Rows collected",
		zap.Int("rows_read", report.RowsRead),
		zap.Int("functions", len(funcs)))

	return funcs
}

// rowDiagnostic converts a row-fatal resolve error into a diagnostic.
func rowDiagnostic(line int, err error) diagnostic.Diagnostic {
	var (
		actionErr *resolve.UnknownActionError
		dimErr    *resolve.UnknownDimensionError
		paramErr  *resolve.InvalidParameterError
	)

	switch {
	case errors.As(err, &actionErr):
		msg := "action is required"
		if actionErr.Raw != "" {
			msg = fmt.Sprintf("unknown action %q", actionErr.Raw)
		}

		d := diagnostic.Error(diagnostic.CodeUnknownAction, line, msg)
		d.Suggestions = actionErr.Suggestions

		return d
	case errors.As(err, &dimErr):
		d := diagnostic.Error(diagnostic.CodeUnknownDimension, line,
			fmt.Sprintf("unknown %s %q", dimErr.Dimension, dimErr.Raw))
		d.Suggestions = dimErr.Suggestions

		return d
	case errors.As(err, &paramErr):
		msg := paramErr.Reason
		if paramErr.Key != "" {
			msg = fmt.Sprintf("parameter %q: %s", paramErr.Key, paramErr.Reason)
		}

		return diagnostic.Error(diagnostic.CodeInvalidParameter, line, msg)
	default:
		return diagnostic.Error(diagnostic.CodeMalformedInput, line, err.Error())
	}
}

// merge renders funcs, merges them into dest and writes the result.
func (d *Driver) merge(
	ctx context.Context,
	funcs []naming.GeneratedFunction,
	dest string,
	dryRun bool,
	report *Report,
	logger *zap.Logger,
) {
	rendered := make([]merge.Rendered, 0, len(funcs))

	for _, fn := range funcs {
		text, err := d.Emitter.Render(fn)
		if err != nil {
			report.abort(diagnostic.CodeRenderError, fn.Spec.Line, err.Error(), err)
			return
		}

		rendered = append(rendered, merge.Rendered{Name: fn.Name, Text: text})
	}

	existing, exists, err := merge.ReadFile(dest)
	if err != nil {
		report.abort(diagnostic.CodeIOError, 0, err.Error(), err)
		return
	}

	if !exists {
		logger.Debug("Destination does not exist, starting from a new file")

		existing = []byte(d.Emitter.NewFile())
	}

	res, err := merge.Merge(existing, rendered)
	if err != nil {
		report.abort(diagnostic.CodeMalformedDestination, 0, fmt.Sprintf("%s: %v", dest, err), err)
		return
	}

	if res.RegionCreated {
		report.Diagnostics.AddInfo(diagnostic.CodeRegionCreated, 0,
			fmt.Sprintf("%s had no generated region markers, region appended at the end", dest))
	}

	report.FunctionsAdded = len(res.Added)
	report.FunctionsUpdated = len(res.Updated)
	report.FunctionsUnchanged = len(res.Unchanged)
	report.RemovalCandidates = res.RemovalCandidates
	report.Changed = res.Changed || !exists

	for _, name := range res.RemovalCandidates {
		report.Diagnostics.AddWarning(diagnostic.CodeRemovalCandidate, 0,
			fmt.Sprintf("%s is no longer generated; it was kept, remove it once nothing calls it", name))
	}

	if dryRun || !report.Changed {
		return
	}

	if err := ctx.Err(); err != nil {
		report.abort(diagnostic.CodeCanceled, 0, "generation canceled before writing", err)
		return
	}

	if err := merge.WriteFileAtomic(dest, res.Content); err != nil {
		report.abort(diagnostic.CodeIOError, 0, err.Error(), err)
		return
	}

	report.Written = true
}
