// Command indexer builds the POR Store and Full-Text Index from the POR
// and PageRank CSVs (spec §6), grounded on the teacher's
// cmd/embeddingsearch/main.go flag-and-usage idiom.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/befeleme/opentrep/internal/builder"
	"github.com/befeleme/opentrep/internal/config"
	"github.com/befeleme/opentrep/internal/ftsindex"
	"github.com/befeleme/opentrep/internal/porstore"
	"github.com/befeleme/opentrep/internal/xlog"
)

// earlyExitCode is reserved for help/version early exits (spec §6).
const earlyExitCode = 99

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("indexer", flag.ContinueOnError)
	prfile := fs.String("prfile", "", "path to the PageRank CSV (ref_airport_pageranked.csv)")
	porfile := fs.String("porfile", "", "path to the POR CSV (ori_por_public.csv)")
	database := fs.String("database", "", "path to the POR Store sqlite database to (re)build")
	indexPath := fs.String("index", "", "path to the Full-Text Index file to (re)build (default: <database>.idx)")
	logPath := fs.String("log", "", "path to append log output to (default: stdout only)")
	lenient := fs.Bool("lenient", false, "skip malformed POR rows instead of aborting the build")
	version := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return earlyExitCode
		}
		return 1
	}
	if *version {
		fmt.Println("opentrep-indexer (unversioned build)")
		return earlyExitCode
	}

	if *prfile == "" || *porfile == "" || *database == "" {
		fs.Usage()
		return 1
	}

	logger, err := xlog.Init(*logPath, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "indexer: open log file: %v\n", err)
		return 1
	}

	cfg := config.Default()
	cfg.DatabasePath = *database
	cfg.IndexPath = *indexPath

	count, err := buildDatabase(cfg, *prfile, *porfile, *lenient, logger)
	if err != nil {
		logger.Error().Err(err).Msg("build failed")
		return 1
	}

	logger.Info().Int("entries", count).Str("database", cfg.DatabasePath).
		Str("index", cfg.IndexPathOrDefault()).Msg("build complete")
	return 0
}

// buildDatabase runs the Index Builder (spec §4.3) against a temp-suffixed
// store and index file, then atomically renames both into place only once
// the whole build has succeeded (spec §6: "Store database file ... must be
// atomically replaceable during build: write to temp path, fsync, rename").
func buildDatabase(cfg config.Config, prfile, porfile string, lenient bool, logger zerolog.Logger) (int, error) {
	dbPath := cfg.DatabasePath
	idxPath := cfg.IndexPathOrDefault()
	tmpDBPath := dbPath + ".building"
	tmpIdxPath := idxPath + ".building"

	_ = os.Remove(tmpDBPath)
	_ = os.Remove(tmpIdxPath)

	store, err := porstore.OpenSQLite(tmpDBPath)
	if err != nil {
		return 0, fmt.Errorf("indexer: open temp store: %w", err)
	}
	defer store.Close()

	idx := ftsindex.New()

	b := &builder.Builder{Lenient: lenient, Logger: &logger}
	count, err := b.Build(context.Background(), store, idx, prfile, porfile)
	if err != nil {
		return 0, err
	}

	if err := store.Close(); err != nil {
		return 0, fmt.Errorf("indexer: close temp store: %w", err)
	}
	if err := syncFile(tmpDBPath); err != nil {
		return 0, fmt.Errorf("indexer: fsync temp store: %w", err)
	}
	if err := ftsindex.Save(idx, tmpIdxPath); err != nil {
		return 0, fmt.Errorf("indexer: save temp index: %w", err)
	}

	if err := os.Rename(tmpDBPath, dbPath); err != nil {
		return 0, fmt.Errorf("indexer: commit store: %w", err)
	}
	if err := os.Rename(tmpIdxPath, idxPath); err != nil {
		return 0, fmt.Errorf("indexer: commit index: %w", err)
	}

	return count, nil
}

// syncFile fsyncs the file at path, so the rename that follows can't
// outrun durably-written data (spec §6: "write to temp path, fsync, rename").
func syncFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
