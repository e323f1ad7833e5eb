package resolve

import (
	"slices"
	"strconv"
	"strings"

	"analytics-codegen/internal/taxonomy"
)

// EventSpec is the validated canonical description of one table row.
//
// Dimension fields hold a canonical identifier or the dimension's unknown
// sentinel, except for variable dimensions, which are empty and listed in
// Variables. Action is empty only when it is variable.
type EventSpec struct {
	Screen    string
	Component string
	Section   string
	Element   string
	Action    string

	// Variables are the dimensions passed by the caller, in dimension order.
	Variables []Variable

	Label Label

	// Parameters are the detail keys in first-seen order, without duplicates
	// and without reserved advertisement keys.
	Parameters []string

	// Advertisement is true when the event needs an advertisement context.
	Advertisement bool

	// Line is the source line of the row. It is not part of the identity.
	Line int
}

// Dimension returns the canonical value of a naming dimension. For the label
// dimension it returns the enumerated identifier, or "" otherwise.
func (s EventSpec) Dimension(dim taxonomy.Dimension) string {
	switch dim {
	case taxonomy.Screen:
		return s.Screen
	case taxonomy.Component:
		return s.Component
	case taxonomy.Section:
		return s.Section
	case taxonomy.Element:
		return s.Element
	case taxonomy.Action:
		return s.Action
	case taxonomy.Label:
		if s.Label.Kind == LabelEnumerated {
			return s.Label.Value
		}
	}

	return ""
}

// Variable returns the variable entry of dim, if dim is variable.
func (s EventSpec) Variable(dim taxonomy.Dimension) (Variable, bool) {
	for _, v := range s.Variables {
		if v.Dimension == dim {
			return v, true
		}
	}

	return Variable{}, false
}

// IsVariable reports whether the caller passes dim.
func (s EventSpec) IsVariable(dim taxonomy.Dimension) bool {
	_, ok := s.Variable(dim)
	return ok
}

// HasParameters reports whether the event carries detail keys.
func (s EventSpec) HasParameters() bool {
	return len(s.Parameters) > 0
}

// Identity returns a key covering every field except Line. Two specs with
// the same identity describe the same event.
func (s EventSpec) Identity() string {
	var sb strings.Builder

	for _, part := range []string{s.Screen, s.Component, s.Section, s.Element, s.Action} {
		sb.WriteString(part)
		sb.WriteByte('|')
	}

	for _, v := range s.Variables {
		sb.WriteString(v.Dimension.String())
		sb.WriteByte('=')
		sb.WriteString(strings.Join(v.Choices, ChoiceSeparator))
		sb.WriteByte('|')
	}

	sb.WriteString(s.Label.Kind.String())
	sb.WriteByte(':')
	sb.WriteString(strconv.Quote(s.Label.Value))
	sb.WriteByte('|')
	sb.WriteString(strings.Join(s.Parameters, ","))
	sb.WriteByte('|')
	sb.WriteString(strconv.FormatBool(s.Advertisement))

	return sb.String()
}

// Equal reports whether s and o have the same identity.
func (s EventSpec) Equal(o EventSpec) bool {
	return s.Screen == o.Screen &&
		s.Component == o.Component &&
		s.Section == o.Section &&
		s.Element == o.Element &&
		s.Action == o.Action &&
		slices.EqualFunc(s.Variables, o.Variables, Variable.Equal) &&
		s.Label == o.Label &&
		slices.Equal(s.Parameters, o.Parameters) &&
		s.Advertisement == o.Advertisement
}
