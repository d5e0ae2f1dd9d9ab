// Package porstore implements the POR Store backend contract of spec §4.1
// (C2): a keyed tabular store of POR records, backed by any SQL engine
// reachable through database/sql. The concrete engine is a pluggable
// backend (spec §6); this package ships a SQLite dialect (default,
// single-file deployments, grounded on original_source's SQLite3
// DBManager) and a Postgres dialect (grounded on
// douglaslinsmeyer-m3-manufacturing-planning-toolbox and
// freeeve-polite-betrayal's lib/pq repositories).
package porstore

import (
	"context"

	"github.com/befeleme/opentrep/internal/bom"
)

// Cursor iterates over a sequence of POR records (spec §4.1:
// scan-all/select-by-coord return an "iterator<POR>").
type Cursor interface {
	Next() bool
	Record() bom.Record
	Err() error
	Close() error
}

// Store is the contract C2 must satisfy (spec §4.1).
type Store interface {
	// CreateEmpty drops and recreates the table and its indexes.
	CreateEmpty(ctx context.Context) error

	// Insert fails with bom.ErrDuplicateKey if rec's composite key
	// already exists.
	Insert(ctx context.Context, rec bom.Record) error

	// UpdateIndexDocID writes the index back-pointer; fails with
	// bom.ErrNotFound if key is absent.
	UpdateIndexDocID(ctx context.Context, key bom.Key, docID uint64) error

	// SelectByKey fails with bom.ErrNotFound if key is absent.
	SelectByKey(ctx context.Context, key bom.Key) (bom.Record, error)

	// SelectByCoord returns records ordered by ascending haversine-like
	// distance from (lat, lon); ties are broken by PageRank descending
	// then lexicographic key (spec §4.1).
	SelectByCoord(ctx context.Context, lat, lon float64) (Cursor, error)

	// ScanAll returns every record in CSV insertion order (spec §8
	// invariant 6), backed by an application-assigned sequence counter
	// rather than backend-specific row ordering.
	ScanAll(ctx context.Context) (Cursor, error)

	// Close releases the store's underlying connection(s).
	Close() error
}
