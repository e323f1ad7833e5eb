package emit

import (
	"strconv"

	"analytics-codegen/internal/match"
)

// argNames derives one argument name per detail key: lowerCamelCase,
// suffixed with "Value" when reserved, and numbered when still not unique.
func argNames(keys []string, reserved func(string) bool) []string {
	names := make([]string, len(keys))
	used := make(map[string]bool, len(keys))

	for i, key := range keys {
		name := match.LowerCamel(key)
		if name == "" || reserved(name) {
			name += "Value"
		}

		candidate := name
		for n := 2; used[candidate] || reserved(candidate); n++ {
			candidate = name + strconv.Itoa(n)
		}

		used[candidate] = true
		names[i] = candidate
	}

	return names
}
