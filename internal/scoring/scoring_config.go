// Package scoring implements the Score Combiner contract of spec §4.6
// (C7): turning each Result's XAPIAN_PCT hits into a complete ScoreBoard
// and rolling per-Result best weights up into a ResultHolder weight.
package scoring

import "github.com/befeleme/opentrep/internal/constants"

// ScoringConfig carries the independently tunable weights of spec §4.6,
// modeled directly on the teacher's ScoringConfig struct / DefaultScoringConfig
// constructor pattern (named float64 fields, one constructor of defaults).
type ScoringConfig struct {
	// Alpha is the per-extra-token heuristic bonus (spec §4.6 step 3).
	Alpha float64

	// KHeurMax bounds HEURISTIC from above.
	KHeurMax float64

	// KEmpty is the penalty factor contributed by an unmatched group to its
	// holder's weight (spec §4.6, last sentence).
	KEmpty float64

	// KUserMax bounds a caller-supplied USER_INPUT weight from above.
	KUserMax float64
}

// DefaultScoringConfig returns the default weights named in spec §4.6.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		Alpha:    constants.HeuristicAlpha,
		KHeurMax: constants.HeuristicMax,
		KEmpty:   constants.EmptyGroupPenalty,
		KUserMax: constants.UserInputMax,
	}
}
