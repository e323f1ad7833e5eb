package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when the input format is not supported.
	ErrUnsupportedFormat = errors.New("ingest: unsupported format")

	// ErrMissingColumn is returned when a required column is missing.
	ErrMissingColumn = errors.New("ingest: required column missing")

	// ErrDuplicateColumn is returned when two header cells map to the same
	// logical column.
	ErrDuplicateColumn = errors.New("ingest: column declared twice")

	// ErrEmptyInput is returned when the source has no header row.
	ErrEmptyInput = errors.New("ingest: input has no header row")
)

// MalformedInputError reports structural damage confined to one row.
type MalformedInputError struct {
	// Line is the 1-based line the damaged row starts on.
	Line   int
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("line %d: malformed input: %s", e.Line, e.Reason)
}

// IsRowError reports whether err only affects a single row, so iteration
// can continue past it.
func IsRowError(err error) bool {
	var m *MalformedInputError
	return errors.As(err, &m)
}
