// Package shopping builds missing-ingredient shopping lists.
package shopping

import (
	"sort"

	"pantrychef/internal/match"
)

// Build returns the union of the missing-ingredient sets across the
// selected results, deduplicated and sorted alphabetically. It is a pure
// function; selection order does not change the outcome.
func Build(selected []match.Result) []string {
	seen := make(map[string]struct{})
	for _, res := range selected {
		for _, ing := range res.Missing {
			seen[ing] = struct{}{}
		}
	}

	list := make([]string, 0, len(seen))
	for ing := range seen {
		list = append(list, ing)
	}
	sort.Strings(list)
	return list
}
