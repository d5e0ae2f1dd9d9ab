// Command searcher runs one free-text query through the resolver pipeline
// against an already-built POR Store and Full-Text Index (spec §6),
// grounded on the teacher's cmd/embeddingsearch/main.go flag-and-usage
// idiom.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/befeleme/opentrep/internal/config"
	"github.com/befeleme/opentrep/internal/ftsindex"
	"github.com/befeleme/opentrep/internal/porstore"
	"github.com/befeleme/opentrep/internal/xlog"
	"github.com/befeleme/opentrep/pkg/opentrep"
)

// earlyExitCode is reserved for help/version early exits (spec §6).
const earlyExitCode = 99

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("searcher", flag.ContinueOnError)
	database := fs.String("database", "", "path to the POR Store sqlite database")
	indexPath := fs.String("index", "", "path to the Full-Text Index file (default: <database>.idx)")
	query := fs.String("query", "", "free-text query to interpret")
	logPath := fs.String("log", "", "path to append log output to (default: stdout only)")
	maxEditDistance := fs.Int("max-edit-distance", 0, "override the default spelling-correction edit distance")
	noSpelling := fs.Bool("no-spelling-correction", false, "disable spelling correction entirely")
	deadlineMS := fs.Int("deadline-ms", 0, "per-query timeout in milliseconds (0 means none)")
	version := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return earlyExitCode
		}
		return 1
	}
	if *version {
		fmt.Println("opentrep-searcher (unversioned build)")
		return earlyExitCode
	}

	if *database == "" || strings.TrimSpace(*query) == "" {
		fs.Usage()
		return 1
	}

	logger, err := xlog.Init(*logPath, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "searcher: open log file: %v\n", err)
		return 1
	}

	cfg := config.Default()
	cfg.DatabasePath = *database
	cfg.IndexPath = *indexPath
	if *maxEditDistance > 0 {
		cfg.MaxEditDistance = *maxEditDistance
	}
	if *noSpelling {
		cfg.SpellingCorrection = false
	}
	cfg.DeadlineMS = *deadlineMS

	if err := search(cfg, *query, logger); err != nil {
		logger.Error().Err(err).Msg("search failed")
		return 1
	}
	return 0
}

func search(cfg config.Config, query string, logger zerolog.Logger) error {
	store, err := porstore.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("searcher: open store: %w", err)
	}
	defer store.Close()

	idx, err := ftsindex.Load(cfg.IndexPathOrDefault())
	if err != nil {
		return fmt.Errorf("searcher: load index: %w", err)
	}
	handle := ftsindex.Open(idx)
	defer handle.Close()

	svc := opentrep.New(store, handle, opentrep.DefaultStopList, nil, logger)

	opts := opentrep.DefaultOptions()
	opts.MaxEditDistance = cfg.MaxEditDistance
	opts.SpellingCorrection = cfg.SpellingCorrection
	opts.DeadlineMS = cfg.DeadlineMS

	result, err := svc.Interpret(context.Background(), query, opts)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

// printResult prints one resolved location per line: rank, key, combined
// weight, and display name (spec §6), followed by any unmatched words.
func printResult(result opentrep.Result) {
	for i, loc := range result.Locations {
		fmt.Printf("%d\t%s\t%.4f\t%s\n", i+1, loc.Key.DescribeKey(), loc.CombinedWeight, loc.Name)
	}
	if len(result.UnmatchedWords) > 0 {
		fmt.Printf("unmatched: %s\n", strings.Join(result.UnmatchedWords, ", "))
	}
}
