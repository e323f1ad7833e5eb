package resolve

import "fmt"

// LabelKind classifies how a row's label is emitted.
type LabelKind int

const (
	// LabelNone means the label cell was blank. Value is the label sentinel.
	LabelNone LabelKind = iota
	// LabelEnumerated means the label resolved to a registry identifier,
	// which Value holds.
	LabelEnumerated
	// LabelFree means the caller passes the label at the call site. Value
	// keeps the cell text as an example.
	LabelFree
)

func (k LabelKind) String() string {
	switch k {
	case LabelNone:
		return "none"
	case LabelEnumerated:
		return "enumerated"
	case LabelFree:
		return "free"
	default:
		return fmt.Sprintf("LabelKind(%d)", int(k))
	}
}

// Label is the resolved label of an event.
type Label struct {
	Kind  LabelKind
	Value string
}

// IsFree reports whether the label is supplied by the caller.
func (l Label) IsFree() bool {
	return l.Kind == LabelFree
}
