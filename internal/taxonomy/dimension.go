package taxonomy

import "fmt"

//go:generate go tool stringer -type=Dimension -linecomment -output=dimension_string.go

// Dimension is one axis of the event classification scheme.
type Dimension int

const (
	Screen    Dimension = iota // screen
	Component                  // component
	Section                    // section
	Element                    // element
	Action                     // action
	Label                      // label
)

// Dimensions returns every dimension in the fixed naming order.
func Dimensions() []Dimension {
	return []Dimension{Screen, Component, Section, Element, Action, Label}
}

// NamingDimensions returns the dimensions that contribute to a function name,
// in the order they are concatenated.
func NamingDimensions() []Dimension {
	return []Dimension{Screen, Component, Section, Element, Action}
}

// ParseDimension parses a dimension name as written in the registry file.
func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions() {
		if d.String() == s {
			return d, nil
		}
	}

	return 0, fmt.Errorf("unknown taxonomy dimension %q", s)
}
