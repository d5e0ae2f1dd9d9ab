package porstore

import (
	"fmt"
	"strings"
)

// Dialect names a supported SQL backend, mirroring lemmego-gpa's
// DialectSQLite/DialectMySQL/DialectPgSQL constant set (here trimmed to the
// two dialects C2 actually ships).
type Dialect string

const (
	DialectSQLite Dialect = "sqlite"
	DialectPgSQL  Dialect = "pgsql"
)

// IsDialectSupported reports whether d is one of the dialects porstore ships.
func IsDialectSupported(d Dialect) bool {
	switch d {
	case DialectSQLite, DialectPgSQL:
		return true
	default:
		return false
	}
}

const tableName = "por"

var columns = []string{
	"iata", "icao", "geonames_id", "page_rank",
	"latitude", "longitude",
	"name", "ascii_name", "alternate_names", "language_synonyms",
	"country", "country_code", "region", "adm1_code", "city", "city_code",
	"transport", "index_doc_id",
}

// seqColumn is an application-assigned monotonic insertion counter, kept
// out of the bom.Record column set (it is not a Record field, so it never
// appears in scanRecord) but ordered on by scanAllSQL so ScanAll reproduces
// CSV insertion order regardless of backend (spec §8 invariant 6).
const seqColumn = "seq"

func insertColumns() []string {
	return append(append([]string{}, columns...), seqColumn)
}

// placeholder renders the dialect's bind-parameter syntax for the i'th
// (1-based) argument: "?" for sqlite, "$i" for postgres.
func placeholder(d Dialect, i int) string {
	if d == DialectPgSQL {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

func placeholders(d Dialect, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = placeholder(d, i+1)
	}
	return strings.Join(ph, ", ")
}

// createTableSQL renders the DDL for d. Both dialects use the same column
// set; only the autoincrement-free integer/real types differ in spelling
// (sqlite's dynamic typing accepts the postgres spellings too, so one
// template covers both, matching lemmego-gpa's single-builder-multi-dialect
// approach rather than a templated-per-dialect generator).
func createTableSQL(d Dialect) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	iata TEXT NOT NULL,
	icao TEXT NOT NULL,
	geonames_id INTEGER NOT NULL,
	page_rank DOUBLE PRECISION NOT NULL,
	latitude DOUBLE PRECISION NOT NULL,
	longitude DOUBLE PRECISION NOT NULL,
	name TEXT NOT NULL,
	ascii_name TEXT NOT NULL,
	alternate_names TEXT NOT NULL,
	language_synonyms TEXT NOT NULL,
	country TEXT NOT NULL,
	country_code TEXT NOT NULL,
	region TEXT NOT NULL,
	adm1_code TEXT NOT NULL,
	city TEXT NOT NULL,
	city_code TEXT NOT NULL,
	transport TEXT NOT NULL,
	index_doc_id BIGINT NOT NULL DEFAULT 0,
	seq BIGINT NOT NULL,
	PRIMARY KEY (iata, icao, geonames_id)
)`, tableName)
}

func dropTableSQL() string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
}

func createCoordIndexSQL() string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS por_coord_idx ON %s (latitude, longitude)", tableName)
}

func createSeqIndexSQL() string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS por_seq_idx ON %s (seq)", tableName)
}

func insertSQL(d Dialect) string {
	cols := insertColumns()
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		tableName, strings.Join(cols, ", "), placeholders(d, len(cols)))
}

func updateIndexDocIDSQL(d Dialect) string {
	return fmt.Sprintf(
		"UPDATE %s SET index_doc_id = %s WHERE iata = %s AND icao = %s AND geonames_id = %s",
		tableName, placeholder(d, 1), placeholder(d, 2), placeholder(d, 3), placeholder(d, 4))
}

func selectByKeySQL(d Dialect) string {
	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE iata = %s AND icao = %s AND geonames_id = %s",
		strings.Join(columns, ", "), tableName, placeholder(d, 1), placeholder(d, 2), placeholder(d, 3))
}

// scanAllSQL orders by seqColumn so ScanAll reproduces CSV insertion order
// across both backends (spec §8 invariant 6), rather than relying on
// whatever order a backend's natural table scan happens to return.
func scanAllSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s ASC", strings.Join(columns, ", "), tableName, seqColumn)
}

// selectByCoordSQL orders rows by a haversine-style great-circle distance
// from (lat, lon). SQLite has no built-in trig functions, so that dialect
// relies on the "distance_km" scalar function registered in sqlite.go;
// Postgres expresses the same formula inline since lib/pq does not support
// registering custom scalar functions from the client side (spec §4.1).
func selectByCoordSQL(d Dialect) string {
	switch d {
	case DialectPgSQL:
		return fmt.Sprintf(`SELECT %s, (
			6371 * acos(
				greatest(-1, least(1,
					cos(radians(%s)) * cos(radians(latitude)) * cos(radians(longitude) - radians(%s))
					+ sin(radians(%s)) * sin(radians(latitude))
				))
			)
		) AS distance_km
		FROM %s
		ORDER BY distance_km ASC, page_rank DESC, iata ASC, icao ASC, geonames_id ASC`,
			strings.Join(columns, ", "), placeholder(d, 1), placeholder(d, 2), placeholder(d, 3), tableName)
	default:
		return fmt.Sprintf(`SELECT %s, distance_km(%s, %s, latitude, longitude) AS distance_km
		FROM %s
		ORDER BY distance_km ASC, page_rank DESC, iata ASC, icao ASC, geonames_id ASC`,
			strings.Join(columns, ", "), placeholder(d, 1), placeholder(d, 2), tableName)
	}
}
