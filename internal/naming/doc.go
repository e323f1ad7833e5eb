// Package naming derives tracking function names and parameter shapes from
// EventSpecs.
//
// A name is the prefix followed by the PascalCase canonical identifiers of
// screen, component, section, element and action, in that order, skipping
// dimensions that hold their unknown sentinel. The same EventSpec always
// yields the same name.
package naming
