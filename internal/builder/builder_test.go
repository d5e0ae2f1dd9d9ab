package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/befeleme/opentrep/internal/bom"
	"github.com/befeleme/opentrep/internal/ftsindex"
	"github.com/befeleme/opentrep/internal/porstore"
)

const porCSVHeader = "iata_code^icao_code^geoname_id^name^asciiname^latitude^longitude^country_code^adm1_code^city_code^country_name^alternatenames^feature_class^feature_code\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newTestStore(t *testing.T) porstore.Store {
	t.Helper()
	s, err := porstore.OpenSQLite(filepath.Join(t.TempDir(), "por.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBuildHappyPath(t *testing.T) {
	dir := t.TempDir()
	prFile := writeFile(t, dir, "pr.csv", "IATA,ICAO,GeonamesID,pagerank\nSFO,KSFO,5391959,0.79\n")
	porFile := writeFile(t, dir, "por.csv", porCSVHeader+
		"SFO^KSFO^5391959^San Francisco International Airport^San Francisco International Airport^37.62^-122.37^US^CA^SFO^United States^^S^AIRP\n")

	store := newTestStore(t)
	idx := ftsindex.New()
	b := &Builder{}

	count, err := b.Build(context.Background(), store, idx, prFile, porFile)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	rec, err := store.SelectByKey(context.Background(), bom.Key{IATA: "SFO", ICAO: "KSFO", GeonamesID: 5391959})
	if err != nil {
		t.Fatalf("SelectByKey: %v", err)
	}
	if rec.PageRank != 0.79 {
		t.Errorf("PageRank = %v, want 0.79", rec.PageRank)
	}
	if rec.IndexDocID == 0 {
		t.Errorf("IndexDocID not set")
	}
	if idx.NumDocuments() != 1 {
		t.Errorf("NumDocuments = %d, want 1", idx.NumDocuments())
	}
}

func TestBuildUnknownKeyGetsFloorPageRank(t *testing.T) {
	dir := t.TempDir()
	prFile := writeFile(t, dir, "pr.csv", "IATA,ICAO,GeonamesID,pagerank\n")
	porFile := writeFile(t, dir, "por.csv", porCSVHeader+
		"NCE^LFMN^6299418^Nice Cote d'Azur^Nice Cote d'Azur^43.66^7.21^FR^^NCE^France^^S^AIRP\n")

	store := newTestStore(t)
	idx := ftsindex.New()
	b := &Builder{}

	if _, err := b.Build(context.Background(), store, idx, prFile, porFile); err != nil {
		t.Fatalf("Build: %v", err)
	}

	rec, err := store.SelectByKey(context.Background(), bom.Key{IATA: "NCE", ICAO: "LFMN", GeonamesID: 6299418})
	if err != nil {
		t.Fatalf("SelectByKey: %v", err)
	}
	if rec.PageRank != 1e-6 {
		t.Errorf("PageRank = %v, want floor 1e-6", rec.PageRank)
	}
}

func TestBuildStrictModeAbortsOnMalformedRow(t *testing.T) {
	dir := t.TempDir()
	prFile := writeFile(t, dir, "pr.csv", "IATA,ICAO,GeonamesID,pagerank\n")
	porFile := writeFile(t, dir, "por.csv", porCSVHeader+
		"SFO^KSFO^not-a-number^San Francisco^San Francisco^37.62^-122.37^US^CA^SFO^United States^^S^AIRP\n")

	store := newTestStore(t)
	idx := ftsindex.New()
	b := &Builder{Lenient: false}

	if _, err := b.Build(context.Background(), store, idx, prFile, porFile); err == nil {
		t.Fatal("expected strict-mode build to fail")
	}
}

func TestBuildLenientModeSkipsMalformedRow(t *testing.T) {
	dir := t.TempDir()
	prFile := writeFile(t, dir, "pr.csv", "IATA,ICAO,GeonamesID,pagerank\n")
	porFile := writeFile(t, dir, "por.csv", porCSVHeader+
		"SFO^KSFO^not-a-number^San Francisco^San Francisco^37.62^-122.37^US^CA^SFO^United States^^S^AIRP\n"+
		"NCE^LFMN^6299418^Nice Cote d'Azur^Nice Cote d'Azur^43.66^7.21^FR^^NCE^France^^S^AIRP\n")

	store := newTestStore(t)
	idx := ftsindex.New()
	b := &Builder{Lenient: true}

	count, err := b.Build(context.Background(), store, idx, prFile, porFile)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 (one row skipped)", count)
	}
}

func TestBuildMissingRequiredColumnAborts(t *testing.T) {
	dir := t.TempDir()
	prFile := writeFile(t, dir, "pr.csv", "IATA,ICAO,GeonamesID,pagerank\n")
	porFile := writeFile(t, dir, "por.csv", "iata_code^icao_code^geoname_id^name\nSFO^KSFO^5391959^SFO\n")

	store := newTestStore(t)
	idx := ftsindex.New()
	b := &Builder{}

	if _, err := b.Build(context.Background(), store, idx, prFile, porFile); err == nil {
		t.Fatal("expected build to fail on missing required column")
	}
}
