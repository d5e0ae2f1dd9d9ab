// Package partition enumerates every ordered partition of a tokenized query
// into contiguous, non-empty word groups (spec §3 "StringPartition", §4.4).
package partition

import "iter"

// StringSet is one ordered decomposition of a token list into contiguous
// groups, e.g. tokens [a b c] -> StringSet [[a] [b c]].
type StringSet [][]string

// Description renders the canonical textual form of a StringSet: each
// group's tokens space-joined, groups separated by " | ".
func (s StringSet) Description() string {
	out := ""
	for i, group := range s {
		if i > 0 {
			out += " | "
		}
		for j, tok := range group {
			if j > 0 {
				out += " "
			}
			out += tok
		}
	}
	return out
}

// Count returns 2^(n-1) for n tokens, the exact number of ordered
// partitions (spec §4.4, invariant 1 of §8), and 0 for n == 0.
func Count(numTokens int) int {
	if numTokens == 0 {
		return 0
	}
	return 1 << (numTokens - 1)
}

// All eagerly materializes every StringSet for tokens, in the
// cut-point-mask order mandated by spec §4.4: masks iterate from 0 to
// 2^(n-1)-1, bit i set meaning "cut after position i".
func All(tokens []string) []StringSet {
	out := make([]StringSet, 0, Count(len(tokens)))
	for s := range Partitions(tokens) {
		out = append(out, s)
	}
	return out
}

// Partitions lazily yields every StringSet for tokens, letting callers
// consume one partition at a time (spec §4.4: "lazy-capable").
func Partitions(tokens []string) iter.Seq[StringSet] {
	return func(yield func(StringSet) bool) {
		n := len(tokens)
		if n == 0 {
			return
		}
		numMasks := Count(n)
		for mask := 0; mask < numMasks; mask++ {
			set := buildStringSet(tokens, mask)
			if !yield(set) {
				return
			}
		}
	}
}

// buildStringSet materializes the StringSet described by mask: bit i of
// mask set means "cut the token list after position i" (for i in
// [0, n-2]).
func buildStringSet(tokens []string, mask int) StringSet {
	n := len(tokens)
	var set StringSet
	start := 0
	for i := 0; i < n-1; i++ {
		if mask&(1<<uint(i)) != 0 {
			set = append(set, append([]string(nil), tokens[start:i+1]...))
			start = i + 1
		}
	}
	set = append(set, append([]string(nil), tokens[start:]...))
	return set
}
