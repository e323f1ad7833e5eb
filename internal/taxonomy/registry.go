package taxonomy

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// Default sentinel identifiers.
const (
	DefaultUnknown      = "unknown"
	DefaultUnknownLabel = "undefined"
)

var (
	// ErrInvalidIdentifier is returned when a canonical identifier cannot be
	// used as part of a generated name.
	ErrInvalidIdentifier = errors.New("taxonomy: invalid canonical identifier")

	// ErrSentinelCollision is returned when a real entry uses the dimension's
	// unknown sentinel as its canonical identifier.
	ErrSentinelCollision = errors.New("taxonomy: entry collides with unknown sentinel")

	// ErrUnknownScopedValue is returned when an advertisement-scoped pair
	// references a value that is not in the registry.
	ErrUnknownScopedValue = errors.New("taxonomy: advertisement scope references unknown value")
)

var identPattern = regexp.MustCompile(`^\p{L}[\p{L}\p{N}]*$`)

// Value is the result of a registry lookup.
type Value struct {
	// ID is the canonical identifier, or the dimension's unknown sentinel
	// when Known is false.
	ID string
	// Known is true when the raw value exactly matched a registry entry.
	Known bool
}

// Spec is the input needed to build a Registry.
type Spec struct {
	// Entries maps raw external values to canonical identifiers per dimension.
	Entries map[Dimension]map[string]string
	// Unknown overrides the unknown sentinel of a dimension.
	Unknown map[Dimension]string
	// AdvertisementScoped lists raw screen/component pairs whose events always
	// need advertisement context.
	AdvertisementScoped []ScopedPair
}

// ScopedPair is a raw screen/component combination.
type ScopedPair struct {
	Screen    string `yaml:"screen"`
	Component string `yaml:"component"`
}

// Registry is an immutable lookup of legal dimension values.
// It is safe for concurrent use.
type Registry struct {
	entries   map[Dimension]map[string]string
	unknown   map[Dimension]string
	rawValues map[Dimension][]string
	adScoped  map[[2]string]struct{}
}

// New validates spec and builds a Registry. The spec is copied.
func New(spec Spec) (*Registry, error) {
	r := &Registry{
		entries:   make(map[Dimension]map[string]string, len(Dimensions())),
		unknown:   make(map[Dimension]string, len(Dimensions())),
		rawValues: make(map[Dimension][]string, len(Dimensions())),
		adScoped:  make(map[[2]string]struct{}, len(spec.AdvertisementScoped)),
	}

	var errs []error

	for _, dim := range Dimensions() {
		sentinel := defaultUnknown(dim)
		if override, ok := spec.Unknown[dim]; ok && override != "" {
			sentinel = override
		}

		if !identPattern.MatchString(sentinel) {
			errs = append(errs, fmt.Errorf("%w: %s sentinel %q", ErrInvalidIdentifier, dim, sentinel))
		}

		r.unknown[dim] = sentinel

		src := spec.Entries[dim]
		entries := make(map[string]string, len(src))
		raws := make([]string, 0, len(src))

		for raw, canonical := range src {
			switch {
			case raw == "":
				errs = append(errs, fmt.Errorf("%w: %s has an empty raw value", ErrInvalidIdentifier, dim))
				continue
			case !identPattern.MatchString(canonical):
				errs = append(errs, fmt.Errorf("%w: %s %q -> %q", ErrInvalidIdentifier, dim, raw, canonical))
				continue
			case canonical == sentinel:
				errs = append(errs, fmt.Errorf("%w: %s %q -> %q", ErrSentinelCollision, dim, raw, canonical))
				continue
			}

			entries[raw] = canonical
			raws = append(raws, raw)
		}

		sort.Strings(raws)

		r.entries[dim] = entries
		r.rawValues[dim] = raws
	}

	for _, pair := range spec.AdvertisementScoped {
		screen, okScreen := r.entries[Screen][pair.Screen]
		component, okComponent := r.entries[Component][pair.Component]

		if !okScreen || !okComponent {
			errs = append(errs, fmt.Errorf("%w: screen %q component %q",
				ErrUnknownScopedValue, pair.Screen, pair.Component))

			continue
		}

		r.adScoped[[2]string{screen, component}] = struct{}{}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return r, nil
}

func defaultUnknown(dim Dimension) string {
	if dim == Label {
		return DefaultUnknownLabel
	}

	return DefaultUnknown
}

// Resolve looks up raw in the given dimension. Matching is exact and
// case-sensitive. A miss returns the dimension's unknown sentinel with Known
// set to false; Resolve never fails.
func (r *Registry) Resolve(dim Dimension, raw string) Value {
	if canonical, ok := r.entries[dim][raw]; ok {
		return Value{ID: canonical, Known: true}
	}

	return Value{ID: r.unknown[dim], Known: false}
}

// Unknown returns the unknown sentinel identifier of a dimension.
func (r *Registry) Unknown(dim Dimension) string {
	return r.unknown[dim]
}

// IsUnknown reports whether id is the dimension's unknown sentinel.
func (r *Registry) IsUnknown(dim Dimension, id string) bool {
	return r.unknown[dim] == id
}

// IsAdvertisementScoped reports whether the canonical screen/component
// combination is flagged as advertisement-scoped.
func (r *Registry) IsAdvertisementScoped(screen, component string) bool {
	_, ok := r.adScoped[[2]string{screen, component}]
	return ok
}

// Values returns the sorted raw values of a dimension. The returned slice is
// a copy.
func (r *Registry) Values(dim Dimension) []string {
	return append([]string(nil), r.rawValues[dim]...)
}

// Len returns the number of entries of a dimension.
func (r *Registry) Len(dim Dimension) int {
	return len(r.entries[dim])
}
