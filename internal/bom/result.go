package bom

// DocumentHit pairs one full-text hit's document data blob, its doc-id, and
// its evolving ScoreBoard (spec §3's "list of (document, score-board)
// pairs").
type DocumentHit struct {
	DocID   uint64
	Blob    string
	Board   ScoreBoard

	// parsed caches, filled lazily during scoring to avoid O(k*hits)
	// re-parsing of the document blob (spec §9 design notes).
	key      Key
	keySet   bool
	pageRank float64
	prSet    bool
}

// Key returns (and caches) the composite key parsed from the hit's blob.
func (h *DocumentHit) Key() (Key, error) {
	if h.keySet {
		return h.key, nil
	}
	k, err := ParseDocumentKey(h.Blob)
	if err != nil {
		return Key{}, err
	}
	h.key, h.keySet = k, true
	return k, nil
}

// PageRank returns (and caches) the PageRank parsed from the hit's blob.
func (h *DocumentHit) PageRank() (float64, error) {
	if h.prSet {
		return h.pageRank, nil
	}
	pr, err := ParseDocumentPageRank(h.Blob)
	if err != nil {
		return 0, err
	}
	h.pageRank, h.prSet = pr, true
	return pr, nil
}

// MatchState is the per-Result state machine of spec §4.9.
type MatchState int

const (
	StateEmpty MatchState = iota
	StateMatched
	StateUnmatched
)

// Result holds the full-text match outcome for one word group of one
// partition (spec §3).
type Result struct {
	QueryString          string
	CorrectedQueryString string
	HasFullTextMatched   bool

	EditDistance          int
	AllowableEditDistance int

	Hits []DocumentHit

	BestDocID          uint64
	BestCombinedWeight float64
	bestHitIndex       int
	hasBest            bool
}

// State reports this Result's position in the spec §4.9 state machine.
func (r *Result) State() MatchState {
	if len(r.Hits) == 0 {
		return StateEmpty
	}
	if r.HasFullTextMatched {
		return StateMatched
	}
	return StateUnmatched
}

// BestHit returns the hit selected as this Result's best match, if any.
func (r *Result) BestHit() (*DocumentHit, bool) {
	if !r.hasBest || r.bestHitIndex < 0 || r.bestHitIndex >= len(r.Hits) {
		return nil, false
	}
	return &r.Hits[r.bestHitIndex], true
}

// SetBest records which hit (by index into Hits) is this Result's best
// combined match, and mirrors it into BestDocID/BestCombinedWeight.
func (r *Result) SetBest(index int, weight float64) {
	r.bestHitIndex = index
	r.hasBest = true
	r.BestCombinedWeight = weight
	if index >= 0 && index < len(r.Hits) {
		r.BestDocID = r.Hits[index].DocID
	}
}
