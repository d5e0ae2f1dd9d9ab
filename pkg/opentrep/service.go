// Package opentrep is the public facade over the resolver pipeline: build
// a Service from an open Store and Index, then call Interpret per spec
// §6's `interpret(query, options)` entry point.
package opentrep

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/befeleme/opentrep/internal/bom"
	"github.com/befeleme/opentrep/internal/ftsindex"
	"github.com/befeleme/opentrep/internal/matcher"
	"github.com/befeleme/opentrep/internal/porstore"
	"github.com/befeleme/opentrep/internal/resolver"
	"github.com/befeleme/opentrep/internal/scoring"
)

// Options is the external form of the recognized `interpret` keys of spec
// §6.
type Options = resolver.Options

// DefaultOptions returns the spec §6 defaults.
func DefaultOptions() Options { return resolver.DefaultOptions() }

// Location is the external-facing POR projection of spec §3.
type Location = bom.Location

// Result is what Interpret returns: resolved locations in partition order,
// plus the deduplicated unmatched-word list (spec §4.8 step 6).
type Result struct {
	Locations      []Location
	UnmatchedWords []string
}

// Service is the constructed, ready-to-query facade (spec §3.9 of
// SPEC_FULL.md): built once from a Store and an Index handle, then shared
// across concurrent queries (spec §5).
type Service struct {
	orchestrator *resolver.Orchestrator
	logger       zerolog.Logger
}

// New builds a Service over an already-open store and index, with an
// optional stop-list and scoring configuration (nil for both uses the
// defaults).
func New(store porstore.Store, index *ftsindex.Handle, stopList matcher.StopList, scoringConfig *scoring.ScoringConfig, logger zerolog.Logger) *Service {
	return &Service{
		orchestrator: resolver.New(store, index, stopList, scoringConfig),
		logger:       logger,
	}
}

// Interpret runs query through the full resolver pipeline (spec §4.8) and
// returns the resolved locations plus unmatched words. A DeadlineExceeded
// error still carries the partial locations/unmatched words the
// orchestrator had already scored when the deadline hit (spec §5).
func (s *Service) Interpret(ctx context.Context, query string, opts Options) (Result, error) {
	locations, unmatched, err := s.orchestrator.Interpret(ctx, query, opts)
	if err != nil {
		s.logger.Error().Str("query", query).Err(err).Msg("interpret failed")
		return Result{Locations: locations, UnmatchedWords: unmatched}, err
	}
	return Result{Locations: locations, UnmatchedWords: unmatched}, nil
}
