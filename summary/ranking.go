package summary

import (
	"cmp"
	"slices"
)

const (
	topCategories     = 3
	otherCategoryName = "Other"
)

// RankCategories orders entries by value descending (name ascending on ties),
// keeps the first three and folds the rest into a single "Other" entry.
func RankCategories(entries []CategoryAmount) []CategoryAmount {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b CategoryAmount) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	if len(sorted) <= topCategories {
		if sorted == nil {
			return []CategoryAmount{}
		}
		return sorted
	}

	var rest int64
	for _, e := range sorted[topCategories:] {
		rest += e.Value
	}
	ranked := make([]CategoryAmount, 0, topCategories+1)
	ranked = append(ranked, sorted[:topCategories]...)
	return append(ranked, CategoryAmount{Name: otherCategoryName, Value: rest})
}
