package porstore

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/befeleme/opentrep/internal/bom"
)

// recordArgs renders rec as the positional values expected by insertSQL's
// column list, JSON-encoding the two variable-length fields since neither
// dialect's driver marshals Go slices/maps on its own (lemmego-gpa leans on
// an ORM for this; porstore stays on the hand-rolled builder and does the
// encoding itself, see DESIGN.md).
func recordArgs(rec bom.Record) ([]any, error) {
	altNames, err := json.Marshal(rec.AlternateNames)
	if err != nil {
		return nil, fmt.Errorf("marshal alternate names: %w", err)
	}
	synonyms, err := json.Marshal(rec.LanguageSynonyms)
	if err != nil {
		return nil, fmt.Errorf("marshal language synonyms: %w", err)
	}
	return []any{
		rec.Key.IATA, rec.Key.ICAO, rec.Key.GeonamesID, rec.PageRank,
		rec.Latitude, rec.Longitude,
		rec.Name, rec.ASCIIName, string(altNames), string(synonyms),
		rec.Country, rec.CountryCode, rec.Region, rec.Adm1Code, rec.City, rec.CityCode,
		string(rec.Transport), rec.IndexDocID,
	}, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows, both of which expose Scan.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one row in the column order of the columns slice into a
// bom.Record. The caller passes a *sql.Row or the current row of a *sql.Rows.
func scanRecord(row rowScanner) (bom.Record, error) {
	var (
		rec       bom.Record
		altNames  string
		synonyms  string
		transport string
	)
	err := row.Scan(
		&rec.Key.IATA, &rec.Key.ICAO, &rec.Key.GeonamesID, &rec.PageRank,
		&rec.Latitude, &rec.Longitude,
		&rec.Name, &rec.ASCIIName, &altNames, &synonyms,
		&rec.Country, &rec.CountryCode, &rec.Region, &rec.Adm1Code, &rec.City, &rec.CityCode,
		&transport, &rec.IndexDocID,
	)
	if err == sql.ErrNoRows {
		return bom.Record{}, bom.ErrNotFound
	}
	if err != nil {
		return bom.Record{}, fmt.Errorf("scan record: %w", err)
	}
	rec.Transport = bom.TransportType(transport)
	if altNames != "" {
		if err := json.Unmarshal([]byte(altNames), &rec.AlternateNames); err != nil {
			return bom.Record{}, fmt.Errorf("unmarshal alternate names: %w", err)
		}
	}
	if synonyms != "" {
		if err := json.Unmarshal([]byte(synonyms), &rec.LanguageSynonyms); err != nil {
			return bom.Record{}, fmt.Errorf("unmarshal language synonyms: %w", err)
		}
	}
	return rec, nil
}

// rowsCursor adapts *sql.Rows (which also carries the trailing distance_km
// column from selectByCoordSQL) to the Cursor contract. withDistanceCol
// tells Next whether to Scan an extra float64 it then discards.
type rowsCursor struct {
	rows            *sql.Rows
	withDistanceCol bool
	cur             bom.Record
	err             error
}

func newRowsCursor(rows *sql.Rows, withDistanceCol bool) *rowsCursor {
	return &rowsCursor{rows: rows, withDistanceCol: withDistanceCol}
}

func (c *rowsCursor) Next() bool {
	if !c.rows.Next() {
		return false
	}
	if c.withDistanceCol {
		var distanceKM float64
		c.cur, c.err = scanRecordWithExtra(c.rows, &distanceKM)
	} else {
		c.cur, c.err = scanRecord(c.rows)
	}
	return c.err == nil
}

func (c *rowsCursor) Record() bom.Record { return c.cur }
func (c *rowsCursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.rows.Err()
}
func (c *rowsCursor) Close() error { return c.rows.Close() }

// scanRecordWithExtra scans a row that carries one trailing column (the
// computed distance_km) beyond the standard column list.
func scanRecordWithExtra(rows *sql.Rows, extra *float64) (bom.Record, error) {
	var (
		rec       bom.Record
		altNames  string
		synonyms  string
		transport string
	)
	err := rows.Scan(
		&rec.Key.IATA, &rec.Key.ICAO, &rec.Key.GeonamesID, &rec.PageRank,
		&rec.Latitude, &rec.Longitude,
		&rec.Name, &rec.ASCIIName, &altNames, &synonyms,
		&rec.Country, &rec.CountryCode, &rec.Region, &rec.Adm1Code, &rec.City, &rec.CityCode,
		&transport, &rec.IndexDocID, extra,
	)
	if err != nil {
		return bom.Record{}, fmt.Errorf("scan record: %w", err)
	}
	rec.Transport = bom.TransportType(transport)
	if altNames != "" {
		if err := json.Unmarshal([]byte(altNames), &rec.AlternateNames); err != nil {
			return bom.Record{}, fmt.Errorf("unmarshal alternate names: %w", err)
		}
	}
	if synonyms != "" {
		if err := json.Unmarshal([]byte(synonyms), &rec.LanguageSynonyms); err != nil {
			return bom.Record{}, fmt.Errorf("unmarshal language synonyms: %w", err)
		}
	}
	return rec, nil
}
