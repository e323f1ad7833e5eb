package resolve

import (
	"fmt"

	"analytics-codegen/internal/taxonomy"
)

// UnknownActionError is returned when the action cell is blank or does not
// match the registry. The row is excluded.
type UnknownActionError struct {
	Line        int
	Raw         string
	Suggestions []string
}

func (e *UnknownActionError) Error() string {
	if e.Raw == "" {
		return fmt.Sprintf("line %d: action is required", e.Line)
	}

	return fmt.Sprintf("line %d: unknown action %q", e.Line, e.Raw)
}

// UnknownDimensionError is returned in strict mode when an optional
// dimension does not match the registry.
type UnknownDimensionError struct {
	Line        int
	Dimension   taxonomy.Dimension
	Raw         string
	Suggestions []string
}

func (e *UnknownDimensionError) Error() string {
	return fmt.Sprintf("line %d: unknown %s %q", e.Line, e.Dimension, e.Raw)
}

// InvalidParameterError is returned when the parameters cell does not follow
// the key convention.
type InvalidParameterError struct {
	Line   int
	Key    string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("line %d: invalid parameters: %s", e.Line, e.Reason)
	}

	return fmt.Sprintf("line %d: invalid parameter %q: %s", e.Line, e.Key, e.Reason)
}
