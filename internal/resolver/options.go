package resolver

import (
	"time"

	"github.com/befeleme/opentrep/internal/constants"
)

// Options carries the per-query recognized keys of spec §6's `interpret`
// entry point.
type Options struct {
	// MaxEditDistance bounds spelling correction (spec §6, default 2).
	MaxEditDistance int

	// SpellingCorrection toggles fuzzy matching; when false, MaxEditDistance
	// is forced to 0 so only verbatim matches are considered.
	SpellingCorrection bool

	// DeadlineMS is the per-query timeout in milliseconds; 0 means none.
	DeadlineMS int

	// UserTokenWeights supplies per-token USER_INPUT weights (spec §4.6
	// step 2); nil/empty means identity weighting.
	UserTokenWeights map[string]float64
}

// DefaultOptions returns the spec §6 defaults.
func DefaultOptions() Options {
	return Options{
		MaxEditDistance:    constants.DefaultMaxEditDistance,
		SpellingCorrection: constants.DefaultSpellCorrection,
	}
}

// effectiveMaxEditDistance applies the SpellingCorrection switch.
func (o Options) effectiveMaxEditDistance() int {
	if !o.SpellingCorrection {
		return 0
	}
	return o.MaxEditDistance
}

// msToDuration converts a millisecond count from the external API (spec §6
// "deadline-ms") to a time.Duration.
func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
