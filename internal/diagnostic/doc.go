// Package diagnostic provides the ordered warnings, errors, and notes
// collected while generating tracking functions.
//
// Key capabilities:
//   - Row-level findings tagged with the 1-based source line
//   - Unknown taxonomy values with "did you mean" suggestions
//   - Run-level failures (collisions, destination I/O) kept alongside
//     everything reported before the abort
package diagnostic
