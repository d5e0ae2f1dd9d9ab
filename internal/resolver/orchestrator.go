// Package resolver implements the Resolver Orchestrator contract of spec
// §4.8 (C9): wiring the String Partitioner, Per-Partition Matcher, Score
// Combiner and Partition Selector into one `interpret` operation, then
// reconciling the elected best holder against the POR Store.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/befeleme/opentrep/internal/arena"
	"github.com/befeleme/opentrep/internal/bom"
	"github.com/befeleme/opentrep/internal/ftsindex"
	"github.com/befeleme/opentrep/internal/matcher"
	"github.com/befeleme/opentrep/internal/normalize"
	"github.com/befeleme/opentrep/internal/partition"
	"github.com/befeleme/opentrep/internal/porstore"
	"github.com/befeleme/opentrep/internal/scoring"
	"github.com/befeleme/opentrep/internal/selector"
)

// Orchestrator owns the long-lived, shared resources (store session, index
// handle, stop-list, scoring config) that every query reuses (spec §5:
// these are process-wide / pooled, not per-query).
type Orchestrator struct {
	store    porstore.Store
	index    *ftsindex.Handle
	stopList matcher.StopList
	combiner *scoring.Combiner
}

// New builds an Orchestrator over an already-open store and index handle.
func New(store porstore.Store, index *ftsindex.Handle, stopList matcher.StopList, scoringConfig *scoring.ScoringConfig) *Orchestrator {
	if stopList == nil {
		stopList = matcher.StopList{}
	}
	return &Orchestrator{
		store:    store,
		index:    index,
		stopList: stopList,
		combiner: scoring.NewCombiner(scoringConfig),
	}
}

// Interpret runs the full C5->C6->C7->C8->C2 pipeline of spec §4.8 for one
// query, scoped by a private Arena for the call's lifetime.
func (o *Orchestrator) Interpret(ctx context.Context, query string, opts Options) ([]bom.Location, []string, error) {
	tokens := normalize.Tokenize(query)
	if len(tokens) == 0 {
		return nil, nil, bom.ErrEmptyQuery
	}

	if opts.DeadlineMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, msToDuration(opts.DeadlineMS))
		defer cancel()
	}

	a := arena.New()
	maxEditDistance := opts.effectiveMaxEditDistance()
	deadlineHit := false

	for set := range partition.Partitions(tokens) {
		select {
		case <-ctx.Done():
			deadlineHit = true
		default:
		}
		if deadlineHit {
			break
		}

		var groupUnmatched []string
		seen := map[string]struct{}{}
		holder, err := matcher.Match(o.index, set, maxEditDistance, o.stopList, &groupUnmatched, seen)
		if err != nil {
			return nil, nil, fmt.Errorf("resolver: match partition %q: %w", set.Description(), err)
		}
		for _, w := range groupUnmatched {
			a.RecordUnmatched(w)
		}

		if err := o.combiner.ScoreHolder(&holder, opts.UserTokenWeights); err != nil {
			return nil, nil, fmt.Errorf("resolver: score partition %q: %w", set.Description(), err)
		}
		a.AddHolder(holder)
	}

	comb := a.Combination()

	if deadlineHit && len(comb.Holders) == 0 {
		return nil, a.UnmatchedWords(), bom.ErrDeadlineExceeded
	}

	var resolveErr error
	if deadlineHit {
		resolveErr = bom.ErrDeadlineExceeded
	}

	if err := selector.SelectCombination(comb); err != nil {
		// No holder, or no holder with a positive weight: not fatal, just
		// an empty result.
		return nil, a.UnmatchedWords(), resolveErr
	}

	best, _ := comb.BestHolder()
	locations, err := o.reconcile(ctx, best, a)
	if err != nil {
		return nil, nil, err
	}
	if resolveErr != nil {
		return locations, a.UnmatchedWords(), resolveErr
	}
	return locations, a.UnmatchedWords(), nil
}

// reconcile fetches the POR record for each matched Result's best hit (spec
// §4.8 step 5) and projects it to a Location (step 6), preserving partition
// order.
func (o *Orchestrator) reconcile(ctx context.Context, best *bom.ResultHolder, a *arena.Arena) ([]bom.Location, error) {
	places := a.Places()
	locations := make([]bom.Location, 0, len(best.Results))

	for i := range best.Results {
		result := &best.Results[i]
		if result.State() != bom.StateMatched {
			continue
		}
		hit, ok := result.BestHit()
		if !ok {
			continue
		}

		key, err := hit.Key()
		if err != nil {
			return nil, fmt.Errorf("resolver: parse best hit key: %w", err)
		}

		rec, err := o.store.SelectByKey(ctx, key)
		if errors.Is(err, bom.ErrNotFound) {
			return nil, fmt.Errorf("resolver: reconcile %s: %w", key.DescribeKey(), bom.ErrIndexStoreOutOfSync)
		}
		if err != nil {
			return nil, fmt.Errorf("resolver: reconcile %s: %w", key.DescribeKey(), bom.ErrStoreBackend)
		}

		place := bom.Place{
			Record:                rec,
			OriginalKeywords:      result.QueryString,
			CorrectedKeywords:     result.CorrectedQueryString,
			Percentage:            hit.Board[bom.ScoreXapianPct],
			EditDistance:          result.EditDistance,
			AllowableEditDistance: result.AllowableEditDistance,
		}
		places.Add(place)
		locations = append(locations, bom.ToLocation(place, result.BestCombinedWeight))
	}

	return locations, nil
}
