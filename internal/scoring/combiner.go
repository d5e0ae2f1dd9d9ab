package scoring

import (
	"github.com/befeleme/opentrep/internal/bom"
	"github.com/befeleme/opentrep/internal/normalize"
)

// Combiner computes the score-board kinds of spec §4.6 and selects each
// Result's best hit, then each ResultHolder's weight. The small-helper-
// function decomposition (heuristicScore, userInputScore, ...) mirrors the
// teacher's scorer.go style, adapted from string-containment heuristics to
// PageRank/heuristic/user-input math.
type Combiner struct {
	config *ScoringConfig
}

// NewCombiner builds a Combiner over config. A nil config falls back to
// DefaultScoringConfig.
func NewCombiner(config *ScoringConfig) *Combiner {
	if config == nil {
		config = DefaultScoringConfig()
	}
	return &Combiner{config: config}
}

// userInputScore returns the USER_INPUT weight for groupText: the identity
// (1.0) unless userTokenWeights supplies per-token weights, in which case
// the group's weight is the product of its tokens' weights, bounded above
// by KUserMax (spec §4.6 step 2).
func (c *Combiner) userInputScore(groupText string, userTokenWeights map[string]float64) float64 {
	if len(userTokenWeights) == 0 {
		return 1.0
	}
	weight := 1.0
	for _, tok := range normalize.Tokenize(groupText) {
		if w, ok := userTokenWeights[tok]; ok {
			weight *= w
		}
	}
	if weight > c.config.KUserMax {
		weight = c.config.KUserMax
	}
	return weight
}

// heuristicScore returns HEURISTIC for a group of tokenCount tokens (spec
// §4.6 step 3): monotone non-decreasing in token count, bounded in
// [1, KHeurMax].
func (c *Combiner) heuristicScore(tokenCount int) float64 {
	h := 1 + c.config.Alpha*float64(tokenCount-1)
	if h > c.config.KHeurMax {
		return c.config.KHeurMax
	}
	if h < 1 {
		return 1
	}
	return h
}

// ScoreResult completes the ScoreBoard of every hit in result and selects
// the hit with maximum COMBINATION as result's best (spec §4.6 steps 1, 4).
// It returns bom.ErrMalformedDocument if a hit's data blob has no parseable
// PageRank.
func (c *Combiner) ScoreResult(result *bom.Result, userTokenWeights map[string]float64) error {
	if len(result.Hits) == 0 {
		return nil
	}

	heuristic := c.heuristicScore(len(normalize.Tokenize(result.QueryString)))
	userInput := c.userInputScore(result.QueryString, userTokenWeights)

	bestIndex := -1
	bestWeight := 0.0

	for i := range result.Hits {
		hit := &result.Hits[i]

		pageRank, err := hit.PageRank()
		if err != nil {
			return err
		}

		if hit.Board == nil {
			hit.Board = bom.ScoreBoard{}
		}
		hit.Board[bom.ScorePageRank] = pageRank
		hit.Board[bom.ScoreHeuristic] = heuristic
		hit.Board[bom.ScoreUserInput] = userInput

		xapianPct := hit.Board[bom.ScoreXapianPct]
		combination := (xapianPct / 100) * pageRank * userInput * heuristic
		hit.Board[bom.ScoreCombination] = combination

		// Ties in COMBINATION break by ascending doc-id (spec §9 design
		// notes, open question resolved in favor of determinism).
		if bestIndex == -1 || combination > bestWeight ||
			(combination == bestWeight && hit.DocID < result.Hits[bestIndex].DocID) {
			bestIndex = i
			bestWeight = combination
		}
	}

	result.SetBest(bestIndex, bestWeight)
	return nil
}

// ScoreHolder runs ScoreResult over every Result in holder, then sets
// holder.Weight to the product of each Result's best combined weight, with
// each unmatched Result contributing the KEmpty penalty factor instead
// (spec §4.6, last sentence).
func (c *Combiner) ScoreHolder(holder *bom.ResultHolder, userTokenWeights map[string]float64) error {
	weight := 1.0
	for i := range holder.Results {
		result := &holder.Results[i]
		if err := c.ScoreResult(result, userTokenWeights); err != nil {
			return err
		}
		if result.State() == bom.StateMatched {
			weight *= result.BestCombinedWeight
		} else {
			weight *= c.config.KEmpty
		}
	}
	holder.Weight = weight
	return nil
}
