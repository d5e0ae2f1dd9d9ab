// Package ftsindex implements the Full-Text Index backend contract of spec
// §4.2 (C3): an inverted index over POR textual fields, with per-field term
// weighting and Levenshtein-based spelling correction. The concrete
// full-text library is explicitly a pluggable backend per spec §6; this
// package is the default, in-process implementation, persisted via
// encoding/gob in the idiom of the teacher's internal/cache package.
package ftsindex

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/befeleme/opentrep/internal/bom"
	"github.com/befeleme/opentrep/internal/constants"
	"github.com/befeleme/opentrep/internal/normalize"
)

// Hit is one scored document match returned by Match (spec §4.2).
type Hit struct {
	DocID        uint64
	Blob         string
	RelevancePct float64
}

// WeightedField is one textual attribute to be indexed, paired with its
// per-field term weight (spec §4.2: "primary name > alternate names").
type WeightedField struct {
	Text   string
	Weight float64
}

// document is the persisted record for one indexed POR.
type document struct {
	Blob string
}

// data is the gob-serializable payload of an Index: documents and the
// inverted postings list (term -> docID -> accumulated weight).
type data struct {
	Documents map[uint64]document
	Postings  map[string]map[uint64]float64
	NextDocID uint64
}

// Index is the default in-process Full-Text Index backend. It is safe for
// concurrent use: AddDocument takes an exclusive lock (build path, spec
// §5 "Writers require exclusive ownership"); Match takes a shared lock.
type Index struct {
	mu   sync.RWMutex
	data data

	refCount int32
}

// New creates an empty, writable Index (used by the builder, C4).
func New() *Index {
	return &Index{
		data: data{
			Documents: make(map[uint64]document),
			Postings:  make(map[string]map[uint64]float64),
		},
	}
}

// AddDocument tokenizes the weighted textual fields, accumulates them
// into the inverted postings list, stores the document's data blob, and
// returns its doc-id (spec §4.2).
func (idx *Index) AddDocument(blob string, fields []WeightedField) uint64 {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.data.NextDocID++
	docID := idx.data.NextDocID
	idx.data.Documents[docID] = document{Blob: blob}

	for _, f := range fields {
		for _, term := range normalize.Tokenize(f.Text) {
			postings, ok := idx.data.Postings[term]
			if !ok {
				postings = make(map[uint64]float64)
				idx.data.Postings[term] = postings
			}
			postings[docID] += f.Weight
		}
	}
	return docID
}

// NumDocuments returns the number of documents currently indexed.
func (idx *Index) NumDocuments() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.data.Documents)
}

// acquire/release implement the reference-counted open/close of spec §5.
func (idx *Index) acquire() { atomic.AddInt32(&idx.refCount, 1) }
func (idx *Index) release() { atomic.AddInt32(&idx.refCount, -1) }

// Handle is a cheap-to-clone, reference-counted handle on a shared Index
// (spec §5: "opens are reference-counted and the handle is cheap to
// clone").
type Handle struct {
	idx    *Index
	closed bool
}

// Open acquires a new handle on idx (read path).
func Open(idx *Index) *Handle {
	idx.acquire()
	return &Handle{idx: idx}
}

// Clone returns a new handle sharing the same underlying Index.
func (h *Handle) Clone() *Handle {
	return Open(h.idx)
}

// Close releases this handle's reference.
func (h *Handle) Close() {
	if h.closed {
		return
	}
	h.closed = true
	h.idx.release()
}

// termCandidate is a scored correction candidate for one query token.
type termCandidate struct {
	term     string
	distance int
	docFreq  int
}

// Match performs spelling-corrected full-text matching of query against
// the index behind h, bounded by maxEditDistance (spec §4.2).
func (h *Handle) Match(query string, maxEditDistance int) (matchedString string, hits []Hit, err error) {
	h.idx.mu.RLock()
	defer h.idx.mu.RUnlock()

	queryTokens := normalize.Tokenize(query)
	if len(queryTokens) == 0 {
		return "", nil, nil
	}

	correctedTokens := make([]string, len(queryTokens))
	anyMatched := false
	anyCorrected := false

	docScores := make(map[uint64]float64)
	maxPossible := 0.0

	for i, tok := range queryTokens {
		postings, exact := h.idx.data.Postings[tok]
		chosen := tok
		if !exact {
			cand, found := h.bestCorrection(tok, maxEditDistance)
			if !found {
				correctedTokens[i] = tok
				continue
			}
			chosen = cand.term
			postings = h.idx.data.Postings[chosen]
			anyCorrected = true
		}
		correctedTokens[i] = chosen
		anyMatched = true

		termMax := 0.0
		for docID, weight := range postings {
			docScores[docID] += weight
			if weight > termMax {
				termMax = weight
			}
		}
		maxPossible += termMax
	}

	if !anyMatched {
		return "", nil, nil
	}

	if anyCorrected {
		matchedString = normalize.Join(correctedTokens)
	} else {
		matchedString = query
	}

	if maxPossible <= 0 {
		maxPossible = 1
	}

	hits = make([]Hit, 0, len(docScores))
	for docID, score := range docScores {
		pct := (score / maxPossible) * 100
		if pct > 100 {
			pct = 100
		}
		hits = append(hits, Hit{
			DocID:        docID,
			Blob:         h.idx.data.Documents[docID].Blob,
			RelevancePct: pct,
		})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].RelevancePct != hits[j].RelevancePct {
			return hits[i].RelevancePct > hits[j].RelevancePct
		}
		return hits[i].DocID < hits[j].DocID
	})

	return matchedString, hits, nil
}

// bestCorrection finds the closest indexed term to tok within
// maxEditDistance, breaking ties by highest document frequency then
// lexicographically (spec §3.3 of SPEC_FULL.md).
func (h *Handle) bestCorrection(tok string, maxEditDistance int) (termCandidate, bool) {
	var best termCandidate
	found := false

	for term, postings := range h.idx.data.Postings {
		d := levenshteinDistance(tok, term)
		if d > maxEditDistance {
			continue
		}
		cand := termCandidate{term: term, distance: d, docFreq: len(postings)}
		if !found || better(cand, best) {
			best = cand
			found = true
		}
	}
	return best, found
}

func better(a, b termCandidate) bool {
	if a.distance != b.distance {
		return a.distance < b.distance
	}
	if a.docFreq != b.docFreq {
		return a.docFreq > b.docFreq
	}
	return a.term < b.term
}

// EditDistance exposes the package's Levenshtein implementation so callers
// outside ftsindex (the matcher, C6) can compute the realized edit distance
// between a query group and its corrected form (spec §4.2).
func EditDistance(a, b string) int {
	return levenshteinDistance(a, b)
}

// DocumentKey is a convenience wrapper over bom.ParseDocumentKey for
// callers holding a ftsindex.Hit.
func DocumentKey(blob string) (bom.Key, error) {
	return bom.ParseDocumentKey(blob)
}

// FieldsForRecord builds the weighted field list for a POR record,
// applying the per-field weights of constants.FieldWeight* (spec §4.2).
func FieldsForRecord(rec bom.Record) []WeightedField {
	fields := []WeightedField{
		{Text: rec.Name, Weight: constants.FieldWeightPrimaryName},
		{Text: rec.ASCIIName, Weight: constants.FieldWeightPrimaryName},
		{Text: rec.Key.IATA, Weight: constants.FieldWeightPrimaryName},
		{Text: rec.Key.ICAO, Weight: constants.FieldWeightPrimaryName},
	}
	for _, alt := range rec.AlternateNames {
		fields = append(fields, WeightedField{Text: alt, Weight: constants.FieldWeightAlternateName})
	}
	for _, syn := range rec.LanguageSynonyms {
		fields = append(fields, WeightedField{Text: syn, Weight: constants.FieldWeightAlternateName})
	}
	fields = append(fields,
		WeightedField{Text: rec.City, Weight: constants.FieldWeightCityCountry},
		WeightedField{Text: rec.Country, Weight: constants.FieldWeightCityCountry},
	)
	return fields
}
