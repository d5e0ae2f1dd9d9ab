package builder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/befeleme/opentrep/internal/bom"
)

// porRequiredColumns are the POR CSV columns the build cannot proceed
// without (spec §6).
var porRequiredColumns = []string{
	"iata_code", "icao_code", "geoname_id", "name", "asciiname",
	"latitude", "longitude", "country_code", "adm1_code", "city_code",
	"country_name", "alternatenames", "feature_class", "feature_code",
}

// porColumnIndex locates every required POR CSV column in header, failing
// if any is missing (spec §6 "missing required columns abort the build").
func porColumnIndex(header []string) (map[string]int, error) {
	col := indexColumns(header, porRequiredColumns...)
	for _, name := range porRequiredColumns {
		if col[name] < 0 {
			return nil, fmt.Errorf("%w: por csv missing required column %q", bom.ErrCSVParse, name)
		}
	}
	return col, nil
}

// featureCodeTransport maps the geonames feature_code of an airport/rail/
// bus/heliport row to a bom.TransportType; unrecognized codes map to
// TransportOther.
func featureCodeTransport(featureClass, featureCode string) bom.TransportType {
	fc := strings.ToUpper(featureCode)
	switch {
	case strings.HasPrefix(fc, "AIRP"):
		return bom.TransportAirport
	case strings.HasPrefix(fc, "RSTN") || strings.Contains(fc, "RR"):
		return bom.TransportRail
	case strings.HasPrefix(fc, "BUS"):
		return bom.TransportBus
	case strings.Contains(fc, "HLPRT") || strings.Contains(fc, "HELIPORT"):
		return bom.TransportHeliport
	default:
		return bom.TransportOther
	}
}

// parsePORRow builds a bom.Record from one POR CSV data row, looking up
// columns by the index map col (spec §4.3 step 2).
func parsePORRow(record []string, col map[string]int) (bom.Record, error) {
	get := func(name string) string {
		i := col[name]
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	geonamesID, err := strconv.Atoi(get("geoname_id"))
	if err != nil {
		return bom.Record{}, fmt.Errorf("%w: non-integer geoname_id %q", bom.ErrCSVParse, get("geoname_id"))
	}
	lat, err := strconv.ParseFloat(get("latitude"), 64)
	if err != nil {
		return bom.Record{}, fmt.Errorf("%w: non-numeric latitude %q", bom.ErrCSVParse, get("latitude"))
	}
	lon, err := strconv.ParseFloat(get("longitude"), 64)
	if err != nil {
		return bom.Record{}, fmt.Errorf("%w: non-numeric longitude %q", bom.ErrCSVParse, get("longitude"))
	}

	rec := bom.Record{
		Key: bom.Key{
			IATA:       get("iata_code"),
			ICAO:       get("icao_code"),
			GeonamesID: geonamesID,
		},
		Latitude:    lat,
		Longitude:   lon,
		Name:        get("name"),
		ASCIIName:   get("asciiname"),
		Country:     get("country_name"),
		CountryCode: get("country_code"),
		Adm1Code:    get("adm1_code"),
		City:        get("asciiname"),
		CityCode:    get("city_code"),
		Transport:   featureCodeTransport(get("feature_class"), get("feature_code")),
	}
	if alt := get("alternatenames"); alt != "" {
		rec.AlternateNames = strings.Split(alt, ",")
		for i := range rec.AlternateNames {
			rec.AlternateNames[i] = strings.TrimSpace(rec.AlternateNames[i])
		}
	}

	if err := rec.Key.Validate(); err != nil {
		return bom.Record{}, fmt.Errorf("%w: %v", bom.ErrCSVParse, err)
	}
	return rec, nil
}
