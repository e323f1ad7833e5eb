package emit

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"analytics-codegen/internal/match"
	"analytics-codegen/internal/merge"
	"analytics-codegen/internal/naming"
	"analytics-codegen/internal/resolve"
	"analytics-codegen/internal/taxonomy"
)

// swiftIndent is one indentation level of emitted Swift.
const swiftIndent = "    "

var swiftKeywords = map[string]bool{
	"associatedtype": true, "class": true, "deinit": true, "enum": true, "extension": true,
	"fileprivate": true, "func": true, "import": true, "init": true, "inout": true,
	"internal": true, "let": true, "open": true, "operator": true, "private": true,
	"protocol": true, "public": true, "rethrows": true, "static": true, "struct": true,
	"subscript": true, "typealias": true, "var": true, "break": true, "case": true,
	"continue": true, "default": true, "defer": true, "do": true, "else": true,
	"fallthrough": true, "for": true, "guard": true, "if": true, "in": true,
	"repeat": true, "return": true, "switch": true, "where": true, "while": true,
	"as": true, "catch": true, "false": true, "is": true, "nil": true, "self": true,
	"super": true, "throw": true, "throws": true, "true": true, "try": true,
	"event": true, "eventDetails": true, "advertisement": true, "label": true,
}

// SwiftEmitter renders static functions for an EventsTracker extension,
// built from EventDetails and dispatched through EventFactory and trackEvent.
type SwiftEmitter struct {
	config Config
}

// NewSwift creates a Swift emitter.
func NewSwift(config Config) *SwiftEmitter {
	return &SwiftEmitter{config: config}
}

// Language returns "swift".
func (s *SwiftEmitter) Language() string { return LanguageSwift }

// Comment renders a Swift line comment.
func (s *SwiftEmitter) Comment(text string) string { return "// " + text }

type swiftFuncData struct {
	Doc       []string
	Name      string
	Args      string
	Arguments []string
	Factory   string
}

var swiftFuncTemplate = template.Must(template.New("swift").Parse(`{{range .Doc}}/// {{.}}
{{end}}static func {{.Name}}({{.Args}}) {
    let eventDetails: EventDetails = EventDetails(
{{range .Arguments}}        {{.}}
{{end}}    )
    let event: EventModel = {{.Factory}}
    trackEvent(event: event)
}`))

// Render renders fn as a Swift static function.
func (s *SwiftEmitter) Render(fn naming.GeneratedFunction) (string, error) {
	var buf bytes.Buffer
	if err := swiftFuncTemplate.Execute(&buf, s.buildFuncData(fn)); err != nil {
		return "", fmt.Errorf("executing template for %s: %w", fn.Name, err)
	}

	return buf.String(), nil
}

// NewFile returns a Swift file with an EventsTracker extension holding an
// empty managed region.
func (s *SwiftEmitter) NewFile() string {
	var sb strings.Builder

	sb.WriteString(s.Comment("Tracking functions generated by analytics-codegen from the tracking table.") + "\n")
	sb.WriteString(s.Comment("Only the region between the markers below is rewritten.") + "\n\n")
	sb.WriteString("import Foundation\n\n")
	sb.WriteString("extension EventsTracker {\n")
	sb.WriteString(merge.BeginMarker + "\n")
	sb.WriteString(merge.EndMarker + "\n")
	sb.WriteString("}\n")

	return sb.String()
}

func (s *SwiftEmitter) buildFuncData(fn naming.GeneratedFunction) swiftFuncData {
	spec := fn.Spec

	data := swiftFuncData{
		Name:    fn.Name,
		Doc:     []string{fmt.Sprintf("Tracks %s.", eventPath(spec))},
		Factory: "EventFactory.event(with: eventDetails)",
	}

	var args []string

	if fn.Shape.NeedsAdvertisement() {
		args = append(args, "advertisement: EventAdvertisementProtocol")
		data.Factory = "EventFactory.event(for: advertisement, with: eventDetails)"
	}

	for _, v := range spec.Variables {
		name := v.Dimension.String()
		args = append(args, name+": Event."+match.Pascal(name))

		if len(v.Choices) > 0 {
			choices := make([]string, len(v.Choices))
			for i, id := range v.Choices {
				choices[i] = "." + id
			}

			data.Doc = append(data.Doc, fmt.Sprintf("The %s is one of %s.", name, strings.Join(choices, ", ")))
		}
	}

	if fn.Shape.NeedsLabel() {
		args = append(args, "label: String")
		data.Doc = append(data.Doc, "Example label: "+strconv.Quote(spec.Label.Value)+".")
	}

	var lines []string

	for _, dim := range taxonomy.NamingDimensions() {
		value := swiftCase(dim, spec.Dimension(dim))
		if spec.IsVariable(dim) {
			value = dim.String()
		}

		lines = append(lines, dim.String()+": "+value)
	}

	lines = append(lines, "label: "+swiftLabel(spec.Label))

	if fn.Shape.NeedsDetails() {
		names := argNames(spec.Parameters, func(name string) bool {
			return swiftKeywords[name] ||
				slices.ContainsFunc(fn.Variables, func(dim taxonomy.Dimension) bool { return dim.String() == name })
		})

		params := make([]string, len(names))
		for i, name := range names {
			args = append(args, name+": String")
			params[i] = fmt.Sprintf("EventDetailsParameter(key: %q, value: %s)", spec.Parameters[i], name)
		}

		// Continuation lines carry their full indentation; the template
		// only indents the first line of each argument.
		lines = append(lines, "details: .defined([\n"+
			indentLines(strings.Join(params, ",\n"), strings.Repeat(swiftIndent, 3))+"\n"+
			strings.Repeat(swiftIndent, 2)+"])")
	}

	for i := range lines[:len(lines)-1] {
		lines[i] += ","
	}

	data.Args = strings.Join(args, ", ")
	data.Arguments = lines

	return data
}

func swiftCase(dim taxonomy.Dimension, id string) string {
	return "Event." + match.Pascal(dim.String()) + "." + id
}

func swiftLabel(label resolve.Label) string {
	switch label.Kind {
	case resolve.LabelFree:
		return "Event.Label.defined(label)"
	case resolve.LabelEnumerated:
		return swiftCase(taxonomy.Label, label.Value)
	default:
		sentinel := label.Value
		if sentinel == "" {
			sentinel = taxonomy.DefaultUnknownLabel
		}

		return swiftCase(taxonomy.Label, sentinel)
	}
}

func indentLines(text, indent string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = indent + l
	}

	return strings.Join(lines, "\n")
}
