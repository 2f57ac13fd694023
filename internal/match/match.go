// Package match scores catalog recipes against an available-ingredient set.
package match

import (
	"sort"

	"pantrychef/internal/catalog"
	"pantrychef/internal/ingredient"
)

// Result describes how feasible one recipe is for a given available set.
// Matched + len(Missing) always equals Required.
type Result struct {
	Recipe   catalog.Recipe
	Matched  int
	Required int
	Missing  []string
}

// Fraction is the share of required ingredients that are available.
func (r Result) Fraction() float64 {
	if r.Required == 0 {
		return 0
	}
	return float64(r.Matched) / float64(r.Required)
}

// Makeable reports whether every required ingredient is available.
func (r Result) Makeable() bool {
	return len(r.Missing) == 0
}

// Match scores every recipe in the catalog against the available set and
// returns the results ordered by descending matched-fraction, ties broken
// by recipe name ascending. An empty available set is fine; every recipe
// simply comes back all-missing.
func Match(cat *catalog.Catalog, available ingredient.Set) []Result {
	results := make([]Result, 0, cat.Len())

	for _, rec := range cat.Recipes() {
		matched := 0
		var missing []string
		for _, ing := range rec.Ingredients {
			if available.Has(ing) {
				matched++
			} else {
				missing = append(missing, ing)
			}
		}
		sort.Strings(missing)

		results = append(results, Result{
			Recipe:   rec,
			Matched:  matched,
			Required: len(rec.Ingredients),
			Missing:  missing,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		fi, fj := results[i].Fraction(), results[j].Fraction()
		if fi != fj {
			return fi > fj
		}
		return results[i].Recipe.Name < results[j].Recipe.Name
	})

	return results
}

// Partition splits ranked results into recipes that are cookable now,
// recipes at or above the threshold fraction, and the rest. Relative order
// inside each group is preserved.
func Partition(results []Result, threshold float64) (ready, almost, rest []Result) {
	for _, res := range results {
		switch {
		case res.Makeable():
			ready = append(ready, res)
		case res.Fraction() >= threshold:
			almost = append(almost, res)
		default:
			rest = append(rest, res)
		}
	}
	return ready, almost, rest
}
