package resolve

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"analytics-codegen/internal/diagnostic"
	"analytics-codegen/internal/ingest"
	"analytics-codegen/internal/match"
	"analytics-codegen/internal/taxonomy"
)

const (
	// DefaultSeparator splits keys in the parameters cell.
	DefaultSeparator = ";"
	// DefaultAdvertisementKey is the reserved key that requests an
	// advertisement context.
	DefaultAdvertisementKey = "advertisement_id"
	// DefaultSuggestLimit caps "did you mean" suggestions per finding.
	DefaultSuggestLimit = 3
)

// keyPattern is the convention for detail parameter keys.
var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)

// Options configure a Resolver.
type Options struct {
	// Separator splits the parameters cell. Empty means DefaultSeparator.
	Separator string
	// AdvertisementKeys are reserved parameter keys. A row listing one of
	// them requires an advertisement context; the key itself is not
	// emitted as a detail.
	AdvertisementKeys []string
	// StrictDimensions turns unknown optional dimension values into row
	// errors instead of warnings.
	StrictDimensions bool
	// SuggestLimit caps suggestions. Zero means DefaultSuggestLimit.
	SuggestLimit int
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Separator:         DefaultSeparator,
		AdvertisementKeys: []string{DefaultAdvertisementKey},
		SuggestLimit:      DefaultSuggestLimit,
	}
}

// Resolver turns raw rows into EventSpecs. It holds no per-run state and is
// safe for concurrent use.
type Resolver struct {
	registry *taxonomy.Registry
	opts     Options
}

// New creates a Resolver backed by registry.
func New(registry *taxonomy.Registry, opts Options) *Resolver {
	if opts.Separator == "" {
		opts.Separator = DefaultSeparator
	}

	if opts.SuggestLimit <= 0 {
		opts.SuggestLimit = DefaultSuggestLimit
	}

	return &Resolver{registry: registry, opts: opts}
}

// Registry returns the registry the resolver validates against.
func (r *Resolver) Registry() *taxonomy.Registry {
	return r.registry
}

// Resolve validates one row. Non-fatal findings are returned as diagnostics
// alongside the spec. A non-nil error means the row must be excluded; the
// diagnostics collected before the failure are still returned.
func (r *Resolver) Resolve(row ingest.RawRow) (EventSpec, []diagnostic.Diagnostic, error) {
	var diags []diagnostic.Diagnostic

	spec := EventSpec{Line: row.Line}

	action, actionVar, actionDiags, err := r.resolveAction(row)
	diags = append(diags, actionDiags...)

	if err != nil {
		return EventSpec{}, diags, err
	}

	spec.Action = action

	optional := []struct {
		dim    taxonomy.Dimension
		column ingest.Column
		dst    *string
	}{
		{taxonomy.Screen, ingest.ColumnScreen, &spec.Screen},
		{taxonomy.Component, ingest.ColumnComponent, &spec.Component},
		{taxonomy.Section, ingest.ColumnSection, &spec.Section},
		{taxonomy.Element, ingest.ColumnElement, &spec.Element},
	}

	for _, o := range optional {
		raw := row.Cell(o.column)

		if strings.Contains(raw, ChoiceSeparator) {
			v, d, err := r.resolveVariable(o.dim, raw, row.Line)
			diags = append(diags, d...)

			if err != nil {
				return EventSpec{}, diags, err
			}

			spec.Variables = append(spec.Variables, v)

			continue
		}

		id, d, err := r.resolveOptional(o.dim, raw, row.Line)
		if err != nil {
			return EventSpec{}, diags, err
		}

		if d != nil {
			diags = append(diags, *d)
		}

		*o.dst = id
	}

	if actionVar != nil {
		spec.Variables = append(spec.Variables, *actionVar)
	}

	label, d := r.resolveLabel(row.Cell(ingest.ColumnLabel), row.Line)
	if d != nil {
		diags = append(diags, *d)
	}

	spec.Label = label

	params, adKey, err := r.parseParameters(row.Cell(ingest.ColumnParameters), row.Line)
	if err != nil {
		return EventSpec{}, diags, err
	}

	spec.Parameters = params
	spec.Advertisement = adKey ||
		row.Cell(ingest.ColumnAdvertisement) != "" ||
		r.registry.IsAdvertisementScoped(spec.Screen, spec.Component)

	return spec, diags, nil
}

// resolveAction returns the canonical action, or a variable when the cell
// lists choices.
func (r *Resolver) resolveAction(row ingest.RawRow) (string, *Variable, []diagnostic.Diagnostic, error) {
	raw := row.Cell(ingest.ColumnAction)
	if raw == "" {
		return "", nil, nil, &UnknownActionError{Line: row.Line}
	}

	if strings.Contains(raw, ChoiceSeparator) {
		v, diags, err := r.resolveVariable(taxonomy.Action, raw, row.Line)
		if err != nil {
			return "", nil, diags, err
		}

		return "", &v, diags, nil
	}

	v := r.registry.Resolve(taxonomy.Action, raw)
	if !v.Known {
		return "", nil, nil, &UnknownActionError{
			Line:        row.Line,
			Raw:         raw,
			Suggestions: r.suggest(taxonomy.Action, raw),
		}
	}

	return v.ID, nil, nil, nil
}

// resolveVariable resolves the choices of a cell such as "home|search".
// Blank choices are ignored. Unknown choices follow the rules of the
// dimension: an error for actions and in strict mode, otherwise a warning
// and the choice is left out.
func (r *Resolver) resolveVariable(dim taxonomy.Dimension, raw string, line int) (Variable, []diagnostic.Diagnostic, error) {
	var diags []diagnostic.Diagnostic

	v := Variable{Dimension: dim}

	for _, part := range strings.Split(raw, ChoiceSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		val := r.registry.Resolve(dim, part)

		switch {
		case val.Known:
			if !slices.Contains(v.Choices, val.ID) {
				v.Choices = append(v.Choices, val.ID)
			}
		case dim == taxonomy.Action:
			return Variable{}, diags, &UnknownActionError{Line: line, Raw: part, Suggestions: r.suggest(dim, part)}
		case r.opts.StrictDimensions:
			return Variable{}, diags, &UnknownDimensionError{
				Line: line, Dimension: dim, Raw: part, Suggestions: r.suggest(dim, part),
			}
		default:
			d := diagnostic.Warning(diagnostic.CodeUnknownDimension, line,
				fmt.Sprintf("unknown %s %q in %q, left out of the listed choices", dim, part, raw))
			d.Suggestions = r.suggest(dim, part)
			diags = append(diags, d)
		}
	}

	return v, diags, nil
}

// resolveOptional maps blank cells and, unless the registry lists it as a
// raw value, the sentinel itself to the sentinel silently. Other misses
// produce a warning, or an error in strict mode.
func (r *Resolver) resolveOptional(dim taxonomy.Dimension, raw string, line int) (string, *diagnostic.Diagnostic, error) {
	if raw == "" {
		return r.registry.Unknown(dim), nil, nil
	}

	v := r.registry.Resolve(dim, raw)
	if v.Known {
		return v.ID, nil, nil
	}

	if raw == r.registry.Unknown(dim) {
		return v.ID, nil, nil
	}

	suggestions := r.suggest(dim, raw)

	if r.opts.StrictDimensions {
		return "", nil, &UnknownDimensionError{Line: line, Dimension: dim, Raw: raw, Suggestions: suggestions}
	}

	d := diagnostic.Warning(diagnostic.CodeUnknownDimension, line,
		fmt.Sprintf("unknown %s %q, using %q", dim, raw, v.ID))
	d.Suggestions = suggestions

	return v.ID, &d, nil
}

func (r *Resolver) resolveLabel(raw string, line int) (Label, *diagnostic.Diagnostic) {
	none := Label{Kind: LabelNone, Value: r.registry.Unknown(taxonomy.Label)}

	if raw == "" {
		return none, nil
	}

	if v := r.registry.Resolve(taxonomy.Label, raw); v.Known {
		return Label{Kind: LabelEnumerated, Value: v.ID}, nil
	}

	if raw == none.Value {
		return none, nil
	}

	d := diagnostic.Info(diagnostic.CodeUnknownLabel, line,
		fmt.Sprintf("label %q is not in the taxonomy, emitting a caller-supplied label", raw))
	d.Suggestions = r.suggest(taxonomy.Label, raw)

	return Label{Kind: LabelFree, Value: raw}, &d
}

// parseParameters splits the parameters cell. It reports whether a reserved
// advertisement key was listed; reserved keys are dropped from the result.
func (r *Resolver) parseParameters(cell string, line int) ([]string, bool, error) {
	if strings.TrimSpace(cell) == "" {
		return nil, false, nil
	}

	var (
		keys  []string
		adKey bool
	)

	seen := make(map[string]struct{})
	segments := strings.Split(cell, r.opts.Separator)

	for i, seg := range segments {
		key := strings.TrimSpace(seg)

		if key == "" {
			return nil, false, &InvalidParameterError{
				Line:   line,
				Reason: fmt.Sprintf("empty key at position %d in %q", i+1, cell),
			}
		}

		if !keyPattern.MatchString(key) {
			return nil, false, &InvalidParameterError{
				Line:   line,
				Key:    key,
				Reason: "keys must be lower snake_case",
			}
		}

		if slices.Contains(r.opts.AdvertisementKeys, key) {
			adKey = true
			continue
		}

		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	return keys, adKey, nil
}

func (r *Resolver) suggest(dim taxonomy.Dimension, raw string) []string {
	return match.Suggest(raw, r.registry.Values(dim), r.opts.SuggestLimit)
}
