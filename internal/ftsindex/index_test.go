package ftsindex

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx := New()
	idx.AddDocument("SFO KSFO 5391959 0.79 san francisco international airport",
		[]WeightedField{{Text: "San Francisco International Airport", Weight: 5}})
	idx.AddDocument("RIO SBGL 3451190 0.60 rio de janeiro galeao",
		[]WeightedField{{Text: "Rio de Janeiro Galeao", Weight: 5}})
	idx.AddDocument("GIG SBGL 3451191 0.62 rio de janeiro international",
		[]WeightedField{{Text: "Rio de Janeiro International", Weight: 5}})
	return idx
}

func TestMatchExact(t *testing.T) {
	idx := newTestIndex(t)
	h := Open(idx)
	defer h.Close()

	matched, hits, err := h.Match("francisco", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched != "francisco" {
		t.Errorf("matched = %q, want %q (verbatim match)", matched, "francisco")
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
}

func TestMatchSpellingCorrection(t *testing.T) {
	idx := newTestIndex(t)
	h := Open(idx)
	defer h.Close()

	matched, hits, err := h.Match("francicso", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched != "francisco" {
		t.Errorf("matched = %q, want corrected %q", matched, "francisco")
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
}

func TestMatchNoHits(t *testing.T) {
	idx := newTestIndex(t)
	h := Open(idx)
	defer h.Close()

	matched, hits, err := h.Match("zzz", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched != "" || len(hits) != 0 {
		t.Errorf("expected no match, got matched=%q hits=%v", matched, hits)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	idx := newTestIndex(t)
	path := filepath.Join(t.TempDir(), "index.gob")
	if err := Save(idx, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file at %s: %v", path, err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.NumDocuments() != idx.NumDocuments() {
		t.Errorf("NumDocuments = %d, want %d", loaded.NumDocuments(), idx.NumDocuments())
	}

	h := Open(loaded)
	defer h.Close()
	_, hits, err := h.Match("rio", 2)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("hits = %d, want 2", len(hits))
	}
}
