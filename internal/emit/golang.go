package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"go/types"
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

// GoEmitter renders Go tracking functions against a runtime package that
// provides Details, Parameter, Advertisement, DefinedLabel, NewEvent and
// Track, one type per dimension (Screen, Component, ...) and one constant per
// taxonomy value named <Dimension><Canonical> (e.g. ScreenAd, LabelUndefined).
type GoEmitter struct {
	config Config
}

// NewGo creates a Go emitter.
func NewGo(config Config) *GoEmitter {
	return &GoEmitter{config: config}
}

// Language returns "go".
func (g *GoEmitter) Language() string { return LanguageGo }

// Comment renders a Go line comment.
func (g *GoEmitter) Comment(text string) string { return "// " + text }

// goArg is one function argument.
type goArg struct {
	Name string
	Type string
}

// goField is one Details field assignment.
type goField struct {
	Name  string
	Value string
}

// goParam is one Parameters entry.
type goParam struct {
	Key string
	Var string
}

type goFuncData struct {
	Doc    []string
	Name   string
	Args   []goArg
	Pkg    string
	Fields []goField
	Params []goParam
	Ad     string
}

var goFuncTemplate = template.Must(template.New("func").Parse(`{{range .Doc}}// {{.}}
{{end}}func {{.Name}}({{range $i, $a := .Args}}{{if $i}}, {{end}}{{$a.Name}} {{$a.Type}}{{end}}) {
	details := {{.Pkg}}.Details{
{{range .Fields}}		{{.Name}}: {{.Value}},
{{end}}{{if .Params}}		Parameters: []{{.Pkg}}.Parameter{
{{range .Params}}			{Key: {{printf "%q" .Key}}, Value: {{.Var}}},
{{end}}		},
{{end}}	}
	{{.Pkg}}.Track({{.Pkg}}.NewEvent({{.Ad}}, details))
}
`))

var goFileTemplate = template.Must(template.New("file").Parse(`{{.Header}}

package {{.Package}}
{{if .Import}}
import {{printf "%q" .Import}}
{{end}}
{{.Begin}}
{{.End}}
`))

// Render renders fn as a formatted Go function declaration.
func (g *GoEmitter) Render(fn naming.GeneratedFunction) (string, error) {
	data := g.buildFuncData(fn)

	var buf bytes.Buffer
	if err := goFuncTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template for %s: %w", fn.Name, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: keep the unformatted code next to the output to aid
		// debugging.
		if g.config.DebugDir != "" {
			_ = writeDebugUnformatted(g.config.DebugDir, fn.Name+".go", buf.Bytes())
		}

		return "", fmt.Errorf("formatting %s: %w", fn.Name, err)
	}

	return strings.TrimRight(string(formatted), "\n"), nil
}

// NewFile returns a Go file with a package clause, the runtime import and an
// empty managed region.
func (g *GoEmitter) NewFile() string {
	var buf bytes.Buffer

	_ = goFileTemplate.Execute(&buf, map[string]string{
		"Header": g.Comment("Tracking functions generated by analytics-codegen from the tracking table.") + "\n" +
			g.Comment("Only the region between the markers below is rewritten."),
		"Package": g.config.packageName(),
		"Import":  g.config.RuntimeImport,
		"Begin":   merge.BeginMarker,
		"End":     merge.EndMarker,
	})

	return buf.String()
}

func (g *GoEmitter) buildFuncData(fn naming.GeneratedFunction) goFuncData {
	pkg := g.config.runtimePackage()
	spec := fn.Spec

	data := goFuncData{
		Name: fn.Name,
		Pkg:  pkg,
		Ad:   "nil",
		Doc:  []string{fmt.Sprintf("%s tracks %s.", fn.Name, eventPath(spec))},
	}

	reserved := func(name string) bool {
		return token.IsKeyword(name) || types.Universe.Lookup(name) != nil ||
			name == pkg || name == "ad" || name == "label" || name == "details" ||
			slices.ContainsFunc(fn.Variables, func(dim taxonomy.Dimension) bool { return dim.String() == name })
	}

	if fn.Shape.NeedsAdvertisement() {
		data.Args = append(data.Args, goArg{Name: "ad", Type: pkg + ".Advertisement"})
		data.Ad = "ad"
	}

	for _, v := range spec.Variables {
		data.Args = append(data.Args, goArg{Name: v.Dimension.String(), Type: pkg + "." + match.Pascal(v.Dimension.String())})

		if len(v.Choices) > 0 {
			choices := make([]string, len(v.Choices))
			for i, id := range v.Choices {
				choices[i] = goConst(pkg, v.Dimension, id)
			}

			data.Doc = append(data.Doc, fmt.Sprintf("The %s is one of %s.", v.Dimension, strings.Join(choices, ", ")))
		}
	}

	if fn.Shape.NeedsLabel() {
		data.Args = append(data.Args, goArg{Name: "label", Type: "string"})
		data.Doc = append(data.Doc, "Example label: "+strconv.Quote(spec.Label.Value)+".")
	}

	for _, dim := range taxonomy.NamingDimensions() {
		value := goConst(pkg, dim, spec.Dimension(dim))
		if spec.IsVariable(dim) {
			value = dim.String()
		}

		data.Fields = append(data.Fields, goField{Name: match.Pascal(dim.String()), Value: value})
	}

	data.Fields = append(data.Fields, goField{Name: "Label", Value: g.labelExpr(pkg, spec.Label)})

	if fn.Shape.NeedsDetails() {
		for i, name := range argNames(spec.Parameters, reserved) {
			data.Args = append(data.Args, goArg{Name: name, Type: "string"})
			data.Params = append(data.Params, goParam{Key: spec.Parameters[i], Var: name})
		}
	}

	return data
}

func (g *GoEmitter) labelExpr(pkg string, label resolve.Label) string {
	switch label.Kind {
	case resolve.LabelFree:
		return pkg + ".DefinedLabel(label)"
	case resolve.LabelEnumerated:
		return goConst(pkg, taxonomy.Label, label.Value)
	default:
		sentinel := label.Value
		if sentinel == "" {
			sentinel = taxonomy.DefaultUnknownLabel
		}

		return goConst(pkg, taxonomy.Label, sentinel)
	}
}

// goConst names the runtime constant of a taxonomy value, e.g.
// events.SectionBuyNow.
func goConst(pkg string, dim taxonomy.Dimension, id string) string {
	return pkg + "." + match.Pascal(dim.String()) + match.UpperFirst(id)
}

// eventPath describes the event for doc comments, e.g. "ad/cart/buyNow/button/tap".
// Variable dimensions appear as "<screen>".
func eventPath(spec resolve.EventSpec) string {
	parts := make([]string, 0, len(taxonomy.NamingDimensions()))

	for _, dim := range taxonomy.NamingDimensions() {
		if spec.IsVariable(dim) {
			parts = append(parts, "<"+dim.String()+">")
			continue
		}

		parts = append(parts, spec.Dimension(dim))
	}

	return strings.Join(parts, "/")
}
