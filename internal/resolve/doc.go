// Package resolve validates raw table rows against the taxonomy registry and
// produces canonical EventSpecs.
//
// Action is mandatory. Screen, component, section and element fall back to
// the dimension's unknown sentinel; a non-blank value that misses the
// registry is reported as a warning with suggestions, or rejected when
// Options.StrictDimensions is set. Labels that miss the registry become
// free-form labels supplied by the caller at the call site.
package resolve
