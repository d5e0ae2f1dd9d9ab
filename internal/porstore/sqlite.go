package porstore

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-sqlite3"

	"github.com/befeleme/opentrep/internal/bom"
)

// sqliteDriverOnce registers the custom sqlite3 driver exactly once: the
// database/sql driver registry panics on a duplicate name, which matters
// here because tests open many independent sqliteStores in one process.
var sqliteDriverOnce sync.Once

const sqliteDriverName = "opentrep-sqlite3"

func registerSQLiteDriver() {
	sqliteDriverOnce.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("distance_km", haversineKM, true)
			},
		})
	})
}

// haversineKM is the great-circle distance in kilometers between two
// lat/lon points, registered as a SQLite scalar function since the engine
// has no built-in trigonometric functions (spec §4.1).
func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKM = 6371.0
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

// sqliteStore is the default Store backend: a single SQLite file, matching
// original_source/opentrep's SQLite3-based DBManager (spec §4.1, §6).
type sqliteStore struct {
	db      *sql.DB
	nextSeq atomic.Int64
}

// OpenSQLite opens (creating if absent) the SQLite database at path.
func OpenSQLite(path string) (Store, error) {
	registerSQLiteDriver()
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, wrapStoreError("open sqlite", err)
	}
	db.SetMaxOpenConns(1) // SQLite serializes writers; avoid "database is locked"
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) CreateEmpty(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, dropTableSQL()); err != nil {
		return wrapStoreError("drop table", err)
	}
	if _, err := s.db.ExecContext(ctx, createTableSQL(DialectSQLite)); err != nil {
		return wrapStoreError("create table", err)
	}
	if _, err := s.db.ExecContext(ctx, createCoordIndexSQL()); err != nil {
		return wrapStoreError("create coord index", err)
	}
	if _, err := s.db.ExecContext(ctx, createSeqIndexSQL()); err != nil {
		return wrapStoreError("create seq index", err)
	}
	s.nextSeq.Store(0)
	return nil
}

func (s *sqliteStore) Insert(ctx context.Context, rec bom.Record) error {
	args, err := recordArgs(rec)
	if err != nil {
		return wrapStoreError("insert", err)
	}
	args = append(args, s.nextSeq.Add(1))
	if _, err := s.db.ExecContext(ctx, insertSQL(DialectSQLite), args...); err != nil {
		if sqliteErr, ok := err.(sqlite3.Error); ok && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("porstore: insert %s: %w", rec.Key.DescribeKey(), bom.ErrDuplicateKey)
		}
		return wrapStoreError("insert", err)
	}
	return nil
}

func (s *sqliteStore) UpdateIndexDocID(ctx context.Context, key bom.Key, docID uint64) error {
	res, err := s.db.ExecContext(ctx, updateIndexDocIDSQL(DialectSQLite),
		docID, key.IATA, key.ICAO, key.GeonamesID)
	if err != nil {
		return wrapStoreError("update index doc id", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapStoreError("update index doc id", err)
	}
	if n == 0 {
		return fmt.Errorf("porstore: update index doc id %s: %w", key.DescribeKey(), bom.ErrNotFound)
	}
	return nil
}

func (s *sqliteStore) SelectByKey(ctx context.Context, key bom.Key) (bom.Record, error) {
	row := s.db.QueryRowContext(ctx, selectByKeySQL(DialectSQLite), key.IATA, key.ICAO, key.GeonamesID)
	rec, err := scanRecord(row)
	if err != nil {
		return bom.Record{}, wrapScanError("select by key", key, err)
	}
	return rec, nil
}

func (s *sqliteStore) SelectByCoord(ctx context.Context, lat, lon float64) (Cursor, error) {
	rows, err := s.db.QueryContext(ctx, selectByCoordSQL(DialectSQLite), lat, lon)
	if err != nil {
		return nil, wrapStoreError("select by coord", err)
	}
	return newRowsCursor(rows, true), nil
}

func (s *sqliteStore) ScanAll(ctx context.Context) (Cursor, error) {
	rows, err := s.db.QueryContext(ctx, scanAllSQL())
	if err != nil {
		return nil, wrapStoreError("scan all", err)
	}
	return newRowsCursor(rows, false), nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// wrapScanError preserves bom.ErrNotFound (so errors.Is keeps working) while
// attaching the key being looked up to any other scan failure.
func wrapScanError(op string, key bom.Key, err error) error {
	if err == bom.ErrNotFound {
		return fmt.Errorf("porstore: %s %s: %w", op, key.DescribeKey(), bom.ErrNotFound)
	}
	return wrapStoreError(op, err)
}
