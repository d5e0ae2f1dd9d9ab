// Package builder implements the Index Builder contract of spec §4.3 (C4):
// a deterministic, idempotent two-phase load of the PageRank and POR CSVs
// into a POR Store and a Full-Text Index. Atomic commit of the built files
// is left to the caller (see Builder).
package builder

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/befeleme/opentrep/internal/bom"
	"github.com/befeleme/opentrep/internal/constants"
	"github.com/befeleme/opentrep/internal/ftsindex"
	"github.com/befeleme/opentrep/internal/porstore"
)

// Builder runs the build algorithm of spec §4.3 over an already-open Store
// and Index. File-swap atomicity (write to temp path, fsync, rename) is the
// caller's responsibility (cmd/indexer), since it is a property of the
// on-disk layout rather than of the algorithm itself (spec §6).
type Builder struct {
	// Lenient, when true, logs and skips malformed POR rows instead of
	// aborting the whole build (spec §4.3 step 3).
	Lenient bool

	// Logger receives one structured record per skipped row (spec §7:
	// "structured log record with row number and raw input"). May be nil.
	Logger *zerolog.Logger
}

// Build runs the two-phase load of spec §4.3 against store and idx,
// returning the number of indexed entries.
func (b *Builder) Build(ctx context.Context, store porstore.Store, idx *ftsindex.Index, pageRankCSVPath, porCSVPath string) (int, error) {
	ranks, err := b.loadPageRanks(pageRankCSVPath)
	if err != nil {
		return 0, err
	}

	if err := store.CreateEmpty(ctx); err != nil {
		return 0, fmt.Errorf("builder: create empty store: %w", err)
	}

	f, err := os.Open(porCSVPath)
	if err != nil {
		return 0, fmt.Errorf("builder: open por csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = '^'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("builder: read por csv header: %w", err)
	}
	col, err := porColumnIndex(header)
	if err != nil {
		return 0, err
	}

	count := 0
	for rowNum := 1; ; rowNum++ {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("builder: %w", err)
		}

		raw, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if b.Lenient {
				b.logSkippedRow(rowNum, strings.Join(raw, "^"), err)
				continue
			}
			return 0, fmt.Errorf("%w: por csv row %d: %v", bom.ErrCSVParse, rowNum, err)
		}

		if err := b.processRow(ctx, store, idx, ranks, raw, col); err != nil {
			if b.Lenient {
				b.logSkippedRow(rowNum, strings.Join(raw, "^"), err)
				continue
			}
			return 0, err
		}
		count++
	}

	return count, nil
}

// processRow implements spec §4.3 step 2 for one POR CSV row: parse,
// attach PageRank, insert into the store, add the index document, then
// write the index back-pointer.
func (b *Builder) processRow(ctx context.Context, store porstore.Store, idx *ftsindex.Index, ranks map[bom.Key]float64, raw []string, col map[string]int) error {
	rec, err := parsePORRow(raw, col)
	if err != nil {
		return err
	}

	rec.PageRank = constants.DefaultPageRankFloor
	if pr, ok := ranks[rec.Key]; ok {
		rec.PageRank = pr
	}

	if err := store.Insert(ctx, rec); err != nil {
		return fmt.Errorf("builder: insert %s: %w", rec.Key.DescribeKey(), err)
	}

	blob := bom.FormatDocumentBlob(rec.Key, rec.PageRank, "")
	docID := idx.AddDocument(blob, ftsindex.FieldsForRecord(rec))

	if err := store.UpdateIndexDocID(ctx, rec.Key, docID); err != nil {
		return fmt.Errorf("builder: update index doc id %s: %w", rec.Key.DescribeKey(), err)
	}
	return nil
}

func (b *Builder) logSkippedRow(rowNum int, raw string, err error) {
	if b.Logger == nil {
		return
	}
	b.Logger.Error().Int("row", rowNum).Str("raw", raw).Err(err).Msg("skipping malformed por row")
}
