package scoring

import (
	"testing"

	"github.com/befeleme/opentrep/internal/bom"
)

func TestHeuristicScoreMonotoneAndBounded(t *testing.T) {
	c := NewCombiner(nil)
	h1 := c.heuristicScore(1)
	h2 := c.heuristicScore(2)
	h3 := c.heuristicScore(100)

	if h1 != 1 {
		t.Errorf("heuristicScore(1) = %v, want 1", h1)
	}
	if h2 <= h1 {
		t.Errorf("heuristicScore(2) = %v, want > %v", h2, h1)
	}
	if h3 > c.config.KHeurMax {
		t.Errorf("heuristicScore(100) = %v, want <= %v", h3, c.config.KHeurMax)
	}
}

func TestUserInputScoreIdentityWithoutWeights(t *testing.T) {
	c := NewCombiner(nil)
	if got := c.userInputScore("rio de janeiro", nil); got != 1.0 {
		t.Errorf("userInputScore = %v, want 1.0", got)
	}
}

func TestUserInputScoreBoundedByKUserMax(t *testing.T) {
	c := NewCombiner(nil)
	weights := map[string]float64{"rio": 1000}
	if got := c.userInputScore("rio", weights); got != c.config.KUserMax {
		t.Errorf("userInputScore = %v, want bounded at %v", got, c.config.KUserMax)
	}
}

func TestScoreResultSelectsMaxCombination(t *testing.T) {
	c := NewCombiner(nil)
	result := &bom.Result{
		QueryString: "rio",
		Hits: []bom.DocumentHit{
			{DocID: 1, Blob: "RIO SBGL 1 0.30 low pagerank", Board: bom.ScoreBoard{bom.ScoreXapianPct: 100}},
			{DocID: 2, Blob: "GIG SBGL 2 0.90 higher pagerank", Board: bom.ScoreBoard{bom.ScoreXapianPct: 100}},
		},
	}

	if err := c.ScoreResult(result, nil); err != nil {
		t.Fatalf("ScoreResult: %v", err)
	}

	best, ok := result.BestHit()
	if !ok {
		t.Fatal("expected a best hit")
	}
	if best.DocID != 2 {
		t.Errorf("best doc id = %d, want 2 (higher pagerank)", best.DocID)
	}
	if !best.Board.Complete() {
		t.Errorf("best hit's score board incomplete: %+v", best.Board)
	}
}

func TestScoreResultMalformedBlob(t *testing.T) {
	c := NewCombiner(nil)
	result := &bom.Result{
		QueryString: "rio",
		Hits: []bom.DocumentHit{
			{DocID: 1, Blob: "not-enough-fields", Board: bom.ScoreBoard{bom.ScoreXapianPct: 100}},
		},
	}
	if err := c.ScoreResult(result, nil); err == nil {
		t.Fatal("expected an error for malformed blob")
	}
}

func TestScoreHolderAppliesEmptyPenalty(t *testing.T) {
	c := NewCombiner(nil)
	holder := &bom.ResultHolder{
		Results: []bom.Result{
			{
				QueryString: "rio",
				Hits: []bom.DocumentHit{
					{DocID: 1, Blob: "RIO SBGL 1 0.50 x", Board: bom.ScoreBoard{bom.ScoreXapianPct: 100}},
				},
				HasFullTextMatched: true,
			},
			{
				QueryString:        "zzz",
				HasFullTextMatched: false,
			},
		},
	}

	if err := c.ScoreHolder(holder, nil); err != nil {
		t.Fatalf("ScoreHolder: %v", err)
	}
	if holder.Weight <= 0 || holder.Weight >= 0.5 {
		t.Errorf("holder weight = %v, want a small positive value (penalized)", holder.Weight)
	}
}
