package ftsindex

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Save writes idx's postings and documents to path as a gob-encoded file,
// the idiom the teacher's internal/cache package uses for its binary
// embedding-database cache, generalized here to be the index's actual
// on-disk format rather than an opportunistic cache of a JSON source.
func Save(idx *Index, path string) error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ftsindex: create %s: %w", path, err)
	}
	enc := gob.NewEncoder(file)
	if err := enc.Encode(idx.data); err != nil {
		_ = file.Close()
		return fmt.Errorf("ftsindex: encode %s: %w", path, err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return fmt.Errorf("ftsindex: sync %s: %w", path, err)
	}
	return file.Close()
}

// Load opens a previously Saved index directory file at path as a
// read-only Index, suitable for sharing across query workers (spec §5).
func Load(path string) (*Index, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ftsindex: open %s: %w", path, err)
	}
	defer file.Close()

	var d data
	dec := gob.NewDecoder(file)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("ftsindex: decode %s: %w", path, err)
	}
	if d.Documents == nil {
		d.Documents = make(map[uint64]document)
	}
	if d.Postings == nil {
		d.Postings = make(map[string]map[uint64]float64)
	}
	return &Index{data: d}, nil
}
