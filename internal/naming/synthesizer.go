package naming

import (
	"errors"
	"fmt"
	"strings"

	"analytics-codegen/internal/match"
	"analytics-codegen/internal/resolve"
	"analytics-codegen/internal/taxonomy"
)

// DefaultPrefix starts every generated function name.
const DefaultPrefix = "track"

// ErrDuplicate is returned when a name was already produced by an identical
// EventSpec. The row is harmless and is not emitted twice.
var ErrDuplicate = errors.New("naming: duplicate event")

// CollisionError is returned when two distinct EventSpecs produce the same
// name. It aborts the run.
type CollisionError struct {
	Name      string
	FirstLine int
	Line      int
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("line %d: function name %q collides with the different event from line %d",
		e.Line, e.Name, e.FirstLine)
}

// GeneratedFunction is a named EventSpec ready for rendering.
type GeneratedFunction struct {
	Name  string
	Spec  resolve.EventSpec
	Shape ParameterShape
	// Variables are the dimensions the signature takes after the
	// advertisement, in dimension order.
	Variables []taxonomy.Dimension
}

// Synthesizer builds function names.
type Synthesizer struct {
	// Prefix starts every name. Empty means DefaultPrefix.
	Prefix string
	// Registry supplies the unknown sentinels that are skipped.
	Registry *taxonomy.Registry
}

// Name returns the function name for spec without checking for collisions.
// Variable dimensions contribute the dimension name, e.g. trackScreenCartTap.
func (s Synthesizer) Name(spec resolve.EventSpec) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	var sb strings.Builder

	sb.WriteString(prefix)

	for _, dim := range taxonomy.NamingDimensions() {
		if spec.IsVariable(dim) {
			sb.WriteString(match.Pascal(dim.String()))
			continue
		}

		id := spec.Dimension(dim)
		if id == "" || s.Registry.IsUnknown(dim, id) {
			continue
		}

		sb.WriteString(match.UpperFirst(id))
	}

	return sb.String()
}

// Synthesize returns the name for spec, checked against the names already
// produced in this run. used maps names to the spec that first produced
// them; Synthesize does not modify it.
func (s Synthesizer) Synthesize(spec resolve.EventSpec, used map[string]resolve.EventSpec) (string, error) {
	name := s.Name(spec)

	prev, ok := used[name]
	if !ok {
		return name, nil
	}

	if prev.Equal(spec) {
		return name, ErrDuplicate
	}

	return name, &CollisionError{Name: name, FirstLine: prev.Line, Line: spec.Line}
}

// Function builds the GeneratedFunction for spec under name.
func Function(name string, spec resolve.EventSpec) GeneratedFunction {
	fn := GeneratedFunction{Name: name, Spec: spec, Shape: ShapeOf(spec)}

	for _, v := range spec.Variables {
		fn.Variables = append(fn.Variables, v.Dimension)
	}

	return fn
}
