package resolve

import (
	"slices"

	"analytics-codegen/internal/taxonomy"
)

// ChoiceSeparator in a dimension cell turns the dimension into a value the
// caller passes, e.g. "home|search" for the screen.
const ChoiceSeparator = "|"

// Variable is a dimension whose value is an argument of the generated
// function instead of a constant.
type Variable struct {
	Dimension taxonomy.Dimension
	// Choices are the canonical identifiers listed in the cell, in cell
	// order. They only document the expected values.
	Choices []string
}

// Equal reports whether v and o describe the same variable dimension.
func (v Variable) Equal(o Variable) bool {
	return v.Dimension == o.Dimension && slices.Equal(v.Choices, o.Choices)
}
