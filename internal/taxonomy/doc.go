// Package taxonomy provides the read-only registry of legal analytics
// dimension values.
//
// The registry maps, per dimension, the raw external value (exactly as it is
// written in the tracking table) to its canonical identifier, and holds one
// "unknown" sentinel identifier per dimension. Lookups are exact and
// case-sensitive; there is no fuzzy matching.
//
// # File format
//
//	version: "1"
//	unknown:
//	  label: undefined        # sentinel overrides, default "unknown"
//	dimensions:
//	  screen:
//	    ad: ad
//	    my_ad: myAd
//	  action:
//	    tap: tap
//	advertisement_scoped:
//	  - screen: ad
//	    component: cart
//
// Canonical identifiers must be identifier-shaped so they can be spliced into
// generated function names and constants.
package taxonomy
