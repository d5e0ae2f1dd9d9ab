// Package bom defines the business object model shared by the resolver
// pipeline: the POR record and its composite key, the per-group Result and
// its ScoreBoard, the per-partition ResultHolder, the cross-partition
// ResultCombination, and the query-facing Place/Location projections
// (spec §3).
package bom

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is the composite key identifying a POR: IATA (3 letters), ICAO (4
// letters) and Geonames ID. At least one of IATA/ICAO must be non-empty;
// GeonamesID of 0 denotes "no Geonames entry" (spec §3).
type Key struct {
	IATA       string
	ICAO       string
	GeonamesID int
}

// Validate enforces the composite-key invariant from spec §3.
func (k Key) Validate() error {
	if k.IATA == "" && k.ICAO == "" {
		return fmt.Errorf("%w: key %s has neither IATA nor ICAO", ErrInvalidRecord, k.DescribeKey())
	}
	if k.GeonamesID < 0 {
		return fmt.Errorf("%w: key %s has negative geonames id", ErrInvalidRecord, k.DescribeKey())
	}
	return nil
}

// DescribeKey renders the whole composite key, suitable for logs and error
// messages (capability set from spec §9 design notes).
func (k Key) DescribeKey() string {
	return fmt.Sprintf("%s-%s-%d", k.IATA, k.ICAO, k.GeonamesID)
}

// DescribeShortKey renders the most human-recognizable part of the key.
func (k Key) DescribeShortKey() string {
	if k.IATA != "" {
		return k.IATA
	}
	if k.ICAO != "" {
		return k.ICAO
	}
	return strconv.Itoa(k.GeonamesID)
}

// ParseDocumentKey extracts the composite key from positions 1-3 of a
// document data blob ("IATA ICAO GeonamesID PageRank ...", spec §6). It
// returns MalformedIndexDocument if the blob has fewer than the mandatory
// four whitespace-separated header fields or GeonamesID is not an integer.
func ParseDocumentKey(blob string) (Key, error) {
	fields := strings.Fields(blob)
	if len(fields) < 4 {
		return Key{}, fmt.Errorf("%w: blob %q has fewer than 4 header fields", ErrMalformedDocument, blob)
	}
	geonamesID, err := strconv.Atoi(fields[2])
	if err != nil {
		return Key{}, fmt.Errorf("%w: blob %q has non-integer geonames id: %v", ErrMalformedDocument, blob, err)
	}
	return Key{IATA: fields[0], ICAO: fields[1], GeonamesID: geonamesID}, nil
}

// ParseDocumentPageRank extracts the PageRank from position 4 of a document
// data blob (spec §4.6 step 1).
func ParseDocumentPageRank(blob string) (float64, error) {
	fields := strings.Fields(blob)
	if len(fields) < constantsDocBlobHeaderFields {
		return 0, fmt.Errorf("%w: blob %q has fewer than 4 header fields", ErrMalformedDocument, blob)
	}
	pageRank, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: blob %q has non-numeric pagerank: %v", ErrMalformedDocument, blob, err)
	}
	return pageRank, nil
}

// constantsDocBlobHeaderFields mirrors constants.DocBlobHeaderFields; bom
// does not import internal/constants.
const constantsDocBlobHeaderFields = 4

// FormatDocumentBlob renders the mandatory data-blob header for a POR
// record, followed by an opaque payload (spec §6).
func FormatDocumentBlob(key Key, pageRank float64, payload string) string {
	return fmt.Sprintf("%s %s %d %s %s", key.IATA, key.ICAO, key.GeonamesID, strconv.FormatFloat(pageRank, 'f', -1, 64), payload)
}
