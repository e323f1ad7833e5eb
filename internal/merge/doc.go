// Package merge splices rendered tracking functions into the managed region
// of a destination file.
//
// The region is bounded by BeginMarker and EndMarker lines. Bytes outside the
// region are never touched. Inside it, functions are identified by name:
// changed ones are replaced in place, unchanged ones are left alone, ones no
// longer generated stay and are reported as removal candidates, and new ones
// are appended in input order. The region is always rendered in one
// canonical layout, so merging the same set twice is a no-op.
package merge
