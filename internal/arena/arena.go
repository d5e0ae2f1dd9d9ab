// Package arena implements the query-scoped bump allocator of spec §9
// design notes: "construct entities freely during one query, free them
// together at the end", replacing the reference implementation's
// per-factory object pools and process-wide supervisor without reproducing
// factory singletons.
package arena

import "github.com/befeleme/opentrep/internal/bom"

// Arena owns every BOM entity constructed while interpreting one query.
// It carries no allocation pooling of its own — Go's garbage collector
// already reclaims bump-allocated Go values once the Arena itself is
// dropped — so its job is purely to give the query a single place to
// register entities and navigate from a child back to its container by
// stable index rather than by back-pointer (spec §9: "implement by ...
// holding stable indices into the parent's collection").
type Arena struct {
	combination bom.Combination
	unmatched   []string
	seen        map[string]struct{}
	places      bom.PlaceHolder
}

// New creates an empty Arena for one query.
func New() *Arena {
	return &Arena{seen: make(map[string]struct{})}
}

// Combination returns the arena's ResultCombination; its Holders slice
// grows through AddHolder.
func (a *Arena) Combination() *bom.Combination {
	return &a.combination
}

// AddHolder appends h to the arena's Combination and returns h's stable
// index, the navigation handle a Result uses to reach its containing
// partition description (spec §9 "stable indices into the parent's
// collection").
func (a *Arena) AddHolder(h bom.ResultHolder) int {
	a.combination.Holders = append(a.combination.Holders, h)
	return len(a.combination.Holders) - 1
}

// RecordUnmatched appends word to the arena's unmatched-word list unless
// it is already present (spec §4.9 "ResultCombination" scope: unmatched
// words are accumulated across every partition of one query, deduplicated).
func (a *Arena) RecordUnmatched(word string) {
	if _, ok := a.seen[word]; ok {
		return
	}
	a.seen[word] = struct{}{}
	a.unmatched = append(a.unmatched, word)
}

// UnmatchedWords returns the deduplicated unmatched-word list accumulated
// so far.
func (a *Arena) UnmatchedWords() []string {
	return a.unmatched
}

// Places returns the arena's PlaceHolder, used while reconciling the best
// holder's Results against the POR store (spec §4.8 step 5).
func (a *Arena) Places() *bom.PlaceHolder {
	return &a.places
}
