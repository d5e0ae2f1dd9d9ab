package opentrep

import "github.com/befeleme/opentrep/internal/matcher"

// DefaultStopList is a small set of common travel-query filler words that
// are never reported as unmatched (spec §4.5), generalized from the
// teacher's local Tokenize stop-word map literal into a process-wide,
// caller-overridable set (spec §5).
var DefaultStopList = matcher.StopList{
	"a": true, "an": true, "the": true,
	"of": true, "in": true, "at": true, "to": true, "from": true,
	"airport": true, "station": true,
}
