// Package selector implements the Partition Selector contract of spec §4.7
// (C8): picking the best-scoring ResultHolder out of a Combination.
package selector

import "github.com/befeleme/opentrep/internal/bom"

// Select picks the index of the best ResultHolder in holders: maximum
// Weight, with ties broken in order by (1) fewer NumUnmatched groups, (2)
// fewer NumGroups overall, (3) lexicographically smaller Description (spec
// §4.7). It returns -1 if every holder has weight 0 ("no best matching
// holder", spec §4.7 last sentence).
func Select(holders []bom.ResultHolder) int {
	best := -1
	anyWeight := false

	for i, h := range holders {
		if h.Weight > 0 {
			anyWeight = true
		}
		if best == -1 || better(h, holders[best]) {
			best = i
		}
	}

	if !anyWeight {
		return -1
	}
	return best
}

// SelectCombination runs Select over c.Holders and sets c.BestIndex,
// returning bom.ErrNoBestMatch if there are no holders or every holder has
// weight 0. A holder whose groups all went unmatched still weighs KEmpty
// per group, so it does not trigger the error.
func SelectCombination(c *bom.Combination) error {
	c.BestIndex = Select(c.Holders)
	if c.BestIndex < 0 {
		return bom.ErrNoBestMatch
	}
	return nil
}

// better reports whether a should be preferred over b under the spec §4.7
// tie-break order.
func better(a, b bom.ResultHolder) bool {
	if a.Weight != b.Weight {
		return a.Weight > b.Weight
	}
	if a.NumUnmatched != b.NumUnmatched {
		return a.NumUnmatched < b.NumUnmatched
	}
	if a.NumGroups != b.NumGroups {
		return a.NumGroups < b.NumGroups
	}
	return a.Description < b.Description
}
