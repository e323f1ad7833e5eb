// Package emit renders GeneratedFunctions as source text for a target
// language.
//
// Rendering is a pure function of its input: no timestamps, no map order,
// no source line numbers. The Go target uses text/template + go/format; the
// Swift target produces the EventsTracker static func shape.
//
// Generated signatures follow the parameter shape:
//   - advertisement context argument first
//   - then the free-form label
//   - then one string argument per detail key, in EventSpec order
package emit
