package emit

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"analytics-codegen/internal/naming"
)

// Supported languages.
const (
	LanguageGo    = "go"
	LanguageSwift = "swift"
)

// ErrUnknownLanguage is returned by Lookup for unsupported targets.
var ErrUnknownLanguage = errors.New("emit: unknown language")

// Emitter renders generated functions for one target language.
type Emitter interface {
	// Language returns the target name, e.g. "go".
	Language() string
	// Render returns the declaration text of fn, doc comment included,
	// without a trailing newline.
	Render(fn naming.GeneratedFunction) (string, error)
	// NewFile returns the initial content of a destination file that does
	// not exist yet. It contains an empty managed region.
	NewFile() string
	// Comment renders text as a line comment.
	Comment(text string) string
}

// Config configures emitters.
type Config struct {
	// Package is the package clause of new Go files.
	Package string
	// RuntimeImport is the import path of the package providing Details,
	// Parameter, Advertisement, NewEvent and Track.
	RuntimeImport string
	// RuntimePackage qualifies runtime identifiers. Empty means the last
	// element of RuntimeImport.
	RuntimePackage string
	// DebugDir receives unformatted output when formatting fails.
	DebugDir string
}

// DefaultPackage is the package clause used when Config.Package is empty.
const DefaultPackage = "tracking"

// DefaultRuntimePackage is the runtime qualifier used when nothing else is
// configured.
const DefaultRuntimePackage = "events"

func (c Config) packageName() string {
	if c.Package == "" {
		return DefaultPackage
	}

	return c.Package
}

func (c Config) runtimePackage() string {
	switch {
	case c.RuntimePackage != "":
		return c.RuntimePackage
	case c.RuntimeImport != "":
		return c.RuntimeImport[strings.LastIndex(c.RuntimeImport, "/")+1:]
	default:
		return DefaultRuntimePackage
	}
}

var factories = map[string]func(Config) Emitter{
	LanguageGo:    func(c Config) Emitter { return NewGo(c) },
	LanguageSwift: func(c Config) Emitter { return NewSwift(c) },
}

// Lookup returns the emitter for language.
func Lookup(language string, cfg Config) (Emitter, error) {
	factory, ok := factories[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownLanguage, language, strings.Join(Languages(), ", "))
	}

	return factory(cfg), nil
}

// Languages returns the supported languages, sorted.
func Languages() []string {
	return slices.Sorted(maps.Keys(factories))
}
