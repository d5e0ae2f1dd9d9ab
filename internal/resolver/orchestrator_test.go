package resolver

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/befeleme/opentrep/internal/bom"
	"github.com/befeleme/opentrep/internal/ftsindex"
	"github.com/befeleme/opentrep/internal/porstore"
)

// testFixture builds the reference dataset of spec §8's end-to-end
// scenarios: SFO/KSFO/5391959/0.79, RIO/SBGL/3451190/0.60,
// GIG/SBGL/3451191/0.62, KBP/UKBB/6300952/0.55, NCE/LFMN/6299418/0.52.
func testFixture(t *testing.T) *Orchestrator {
	t.Helper()

	store, err := porstore.OpenSQLite(filepath.Join(t.TempDir(), "por.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := store.CreateEmpty(context.Background()); err != nil {
		t.Fatalf("CreateEmpty: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	idx := ftsindex.New()

	records := []bom.Record{
		{Key: bom.Key{IATA: "SFO", ICAO: "KSFO", GeonamesID: 5391959}, PageRank: 0.79,
			Name: "San Francisco International Airport", ASCIIName: "San Francisco International Airport",
			City: "San Francisco", Country: "United States", Transport: bom.TransportAirport},
		{Key: bom.Key{IATA: "RIO", ICAO: "SBGL", GeonamesID: 3451190}, PageRank: 0.60,
			Name: "Rio de Janeiro Galeao", ASCIIName: "Rio de Janeiro Galeao",
			City: "Rio de Janeiro", Country: "Brazil", Transport: bom.TransportAirport},
		{Key: bom.Key{IATA: "GIG", ICAO: "SBGL", GeonamesID: 3451191}, PageRank: 0.62,
			Name: "Rio de Janeiro International", ASCIIName: "Rio de Janeiro International",
			City: "Rio de Janeiro", Country: "Brazil", Transport: bom.TransportAirport},
		{Key: bom.Key{IATA: "KBP", ICAO: "UKBB", GeonamesID: 6300952}, PageRank: 0.55,
			Name: "Kyiv Boryspil International", ASCIIName: "Kyiv Boryspil International",
			City: "Kyiv", Country: "Ukraine", Transport: bom.TransportAirport},
		{Key: bom.Key{IATA: "NCE", ICAO: "LFMN", GeonamesID: 6299418}, PageRank: 0.52,
			Name: "Nice Cote d'Azur", ASCIIName: "Nice Cote d'Azur",
			City: "Nice", Country: "France", Transport: bom.TransportAirport},
	}

	for _, rec := range records {
		blob := bom.FormatDocumentBlob(rec.Key, rec.PageRank, "")
		docID := idx.AddDocument(blob, ftsindex.FieldsForRecord(rec))
		rec.IndexDocID = docID
		if err := store.Insert(context.Background(), rec); err != nil {
			t.Fatalf("Insert %s: %v", rec.Key.IATA, err)
		}
		if err := store.UpdateIndexDocID(context.Background(), rec.Key, docID); err != nil {
			t.Fatalf("UpdateIndexDocID %s: %v", rec.Key.IATA, err)
		}
	}

	handle := ftsindex.Open(idx)
	t.Cleanup(handle.Close)

	return New(store, handle, nil, nil)
}

func TestInterpretSingleTokenExactMatch(t *testing.T) {
	o := testFixture(t)
	locations, unmatched, err := o.Interpret(context.Background(), "sfo", DefaultOptions())
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if len(locations) != 1 || locations[0].Key.IATA != "SFO" {
		t.Fatalf("locations = %+v, want [SFO]", locations)
	}
	if len(unmatched) != 0 {
		t.Errorf("unmatched = %v, want none", unmatched)
	}
}

func TestInterpretSpellingCorrection(t *testing.T) {
	o := testFixture(t)
	locations, _, err := o.Interpret(context.Background(), "sna francicso", DefaultOptions())
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if len(locations) == 0 || locations[0].Key.IATA != "SFO" {
		t.Fatalf("locations = %+v, want top result SFO", locations)
	}
}

func TestInterpretRioDeJaneiroPrefersHigherPageRank(t *testing.T) {
	o := testFixture(t)
	locations, _, err := o.Interpret(context.Background(), "rio de janeiro", DefaultOptions())
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if len(locations) == 0 || locations[0].Key.IATA != "GIG" {
		t.Fatalf("locations = %+v, want top result GIG (higher pagerank)", locations)
	}
}

func TestInterpretNoMatchReturnsUnmatchedWord(t *testing.T) {
	o := testFixture(t)
	locations, unmatched, err := o.Interpret(context.Background(), "zzz", DefaultOptions())
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if len(locations) != 0 {
		t.Errorf("locations = %+v, want none", locations)
	}
	if len(unmatched) != 1 || unmatched[0] != "zzz" {
		t.Errorf("unmatched = %v, want [zzz]", unmatched)
	}
}

func TestInterpretTwoGroupPartitionWins(t *testing.T) {
	o := testFixture(t)
	locations, _, err := o.Interpret(context.Background(), "nce kbp", DefaultOptions())
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if len(locations) != 2 || locations[0].Key.IATA != "NCE" || locations[1].Key.IATA != "KBP" {
		t.Fatalf("locations = %+v, want [NCE, KBP] in order", locations)
	}
}

func TestInterpretEmptyQuery(t *testing.T) {
	o := testFixture(t)
	_, _, err := o.Interpret(context.Background(), "   ", DefaultOptions())
	if !errors.Is(err, bom.ErrEmptyQuery) {
		t.Errorf("err = %v, want ErrEmptyQuery", err)
	}
}
