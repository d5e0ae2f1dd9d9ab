package builder

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/befeleme/opentrep/internal/bom"
)

// loadPageRanks parses the PageRank CSV ("ref_airport_pageranked.csv", spec
// §6: "IATA,ICAO,GeonamesID,pagerank") into a composite-key -> pagerank
// mapping. Duplicate keys are last-wins, with a warning logged to b.Logger
// when it is set (spec §6).
func (b *Builder) loadPageRanks(path string) (map[bom.Key]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("builder: open pagerank csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("builder: read pagerank csv header: %w", err)
	}
	col := indexColumns(header, "IATA", "ICAO", "GeonamesID", "pagerank")
	for _, name := range []string{"IATA", "ICAO", "GeonamesID", "pagerank"} {
		if col[name] < 0 {
			return nil, fmt.Errorf("%w: pagerank csv missing column %q", bom.ErrCSVParse, name)
		}
	}

	ranks := make(map[bom.Key]float64)
	for rowNum := 1; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: pagerank csv row %d: %v", bom.ErrCSVParse, rowNum, err)
		}

		geonamesID, convErr := strconv.Atoi(strings.TrimSpace(record[col["GeonamesID"]]))
		if convErr != nil {
			return nil, fmt.Errorf("%w: pagerank csv row %d: non-integer geonames id", bom.ErrCSVParse, rowNum)
		}
		pagerank, convErr := strconv.ParseFloat(strings.TrimSpace(record[col["pagerank"]]), 64)
		if convErr != nil {
			return nil, fmt.Errorf("%w: pagerank csv row %d: non-numeric pagerank", bom.ErrCSVParse, rowNum)
		}

		key := bom.Key{
			IATA:       strings.TrimSpace(record[col["IATA"]]),
			ICAO:       strings.TrimSpace(record[col["ICAO"]]),
			GeonamesID: geonamesID,
		}
		if _, exists := ranks[key]; exists && b.Logger != nil {
			b.Logger.Warn().Str("key", key.DescribeKey()).Int("row", rowNum).Msg("duplicate pagerank key, last wins")
		}
		ranks[key] = pagerank
	}
	return ranks, nil
}

// indexColumns maps each wanted header name to its column index, or -1 if
// absent, matching MaxMind-CSV-loader idiom of header-indexed column
// lookup (grounded on the geoip CSV loader in the example pack).
func indexColumns(header []string, wanted ...string) map[string]int {
	idx := make(map[string]int, len(wanted))
	for _, w := range wanted {
		idx[w] = -1
	}
	for i, col := range header {
		col = strings.TrimSpace(col)
		if _, ok := idx[col]; ok {
			idx[col] = i
		}
	}
	return idx
}
