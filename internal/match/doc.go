// Package match provides identifier tokenizing and casing plus ranked
// suggestions for values that are not in the taxonomy.
//
// Key functions:
//   - Pascal / LowerCamel: casing used for function and argument names
//   - NormalizeIdent: folds header names and raw values for loose comparison
//   - Suggest: ranks known values close to an unknown one
package match
