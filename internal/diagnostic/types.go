package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Codes used across the pipeline.
const (
	CodeMalformedInput       = "malformed_input"
	CodeUnknownAction        = "unknown_action"
	CodeInvalidParameter     = "invalid_parameter"
	CodeUnknownDimension     = "unknown_dimension"
	CodeUnknownLabel         = "unknown_label"
	CodeDuplicateRow         = "duplicate_row"
	CodeNameCollision        = "name_collision"
	CodeRemovalCandidate     = "removal_candidate"
	CodeIOError              = "io_error"
	CodeMalformedDestination = "malformed_destination"
	CodeRegionCreated        = "region_created"
	CodeRenderError          = "render_error"
	CodeCanceled             = "canceled"
)

// Diagnostics is the ordered list of findings of a single run.
// Order is the order in which the pipeline produced them.
type Diagnostics struct {
	Items []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Line is the 1-based source line the diagnostic refers to, 0 when
	// it is not tied to an input row.
	Line int
	// Message is the human-readable description.
	Message string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Add appends an already built diagnostic.
func (d *Diagnostics) Add(items ...Diagnostic) {
	d.Items = append(d.Items, items...)
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code string, line int, message string) {
	d.Items = append(d.Items, Error(code, line, message))
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code string, line int, message string) {
	d.Items = append(d.Items, Warning(code, line, message))
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code string, line int, message string) {
	d.Items = append(d.Items, Info(code, line, message))
}

// Error builds an error diagnostic.
func Error(code string, line int, message string) Diagnostic {
	return Diagnostic{Severity: SeverityError, Code: code, Line: line, Message: message}
}

// Warning builds a warning diagnostic.
func Warning(code string, line int, message string) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Code: code, Line: line, Message: message}
}

// Info builds an info diagnostic.
func Info(code string, line int, message string) Diagnostic {
	return Diagnostic{Severity: SeverityInfo, Code: code, Line: line, Message: message}
}

// Errors returns the error diagnostics in order.
func (d *Diagnostics) Errors() []Diagnostic {
	return d.filter(SeverityError)
}

// Warnings returns the warning diagnostics in order.
func (d *Diagnostics) Warnings() []Diagnostic {
	return d.filter(SeverityWarning)
}

// WithCode returns the diagnostics carrying the given code.
func (d *Diagnostics) WithCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, item := range d.Items {
		if item.Code == code {
			out = append(out, item)
		}
	}

	return out
}

func (d *Diagnostics) filter(sev Severity) []Diagnostic {
	var out []Diagnostic

	for _, item := range d.Items {
		if item.Severity == sev {
			out = append(out, item)
		}
	}

	return out
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	for _, item := range d.Items {
		if item.Severity == SeverityError {
			return true
		}
	}

	return false
}

// Len returns the number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Items)
}

// Error returns a combined error from all error diagnostics, or nil if there
// are none.
func (d *Diagnostics) Error() error {
	errs := d.Errors()
	if len(errs) == 0 {
		return nil
	}

	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + quoteJoin(d.Suggestions) + "?)"
	}

	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s", d.Line, msg)
	}

	return msg
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}

	return strings.Join(quoted, ", ")
}
