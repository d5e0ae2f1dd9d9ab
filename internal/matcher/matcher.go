// Package matcher implements the Per-Partition Matcher contract of spec
// §4.5 (C6): turning one StringSet partition into a scored ResultHolder by
// running each word group through the full-text index.
package matcher

import (
	"github.com/befeleme/opentrep/internal/bom"
	"github.com/befeleme/opentrep/internal/ftsindex"
	"github.com/befeleme/opentrep/internal/normalize"
	"github.com/befeleme/opentrep/internal/partition"
)

// StopList is the injected, process-wide-immutable set of single tokens
// that are never reported as unmatched words (spec §5 "Stop-list ...
// process-wide, initialized once at startup, immutable thereafter"),
// generalized from the teacher's local stop-word map literal.
type StopList map[string]bool

// Match runs partition set against the index handle h, producing one
// ResultHolder (spec §4.5). Words from single-token, non-stop-listed,
// unmatched groups are appended to unmatched, deduplicated against entries
// already present there (grounded on RequestInterpreter.cpp's
// addUnmatchedWord, SPEC_FULL.md §4).
func Match(h *ftsindex.Handle, set partition.StringSet, maxEditDistance int, stopList StopList, unmatched *[]string, seen map[string]struct{}) (bom.ResultHolder, error) {
	holder := bom.ResultHolder{
		Description: set.Description(),
		Results:     make([]bom.Result, 0, len(set)),
		NumGroups:   len(set),
	}

	for _, group := range set {
		groupText := normalize.Join(group)

		result := bom.Result{
			QueryString:           groupText,
			AllowableEditDistance: maxEditDistance,
		}

		matched, hits, err := h.Match(groupText, maxEditDistance)
		if err != nil {
			return bom.ResultHolder{}, err
		}

		result.HasFullTextMatched = len(hits) > 0
		if result.HasFullTextMatched {
			result.CorrectedQueryString = matched
			result.EditDistance = ftsindex.EditDistance(groupText, matched)
			result.Hits = make([]bom.DocumentHit, 0, len(hits))
			for _, hit := range hits {
				result.Hits = append(result.Hits, bom.DocumentHit{
					DocID: hit.DocID,
					Blob:  hit.Blob,
					Board: bom.ScoreBoard{bom.ScoreXapianPct: hit.RelevancePct},
				})
			}
		} else {
			holder.NumUnmatched++
			if len(group) == 1 {
				recordUnmatched(group[0], stopList, unmatched, seen)
			}
		}

		holder.Results = append(holder.Results, result)
	}

	return holder, nil
}

// recordUnmatched appends word to *unmatched unless it is stop-listed or
// already present (spec §4.5 last bullet).
func recordUnmatched(word string, stopList StopList, unmatched *[]string, seen map[string]struct{}) {
	if stopList[word] {
		return
	}
	if _, ok := seen[word]; ok {
		return
	}
	seen[word] = struct{}{}
	*unmatched = append(*unmatched, word)
}
