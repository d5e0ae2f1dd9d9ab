package bom

// Place is a reconstructed POR enriched with match metadata (spec §3),
// owned by the query-scoped PlaceHolder for the duration of one query.
type Place struct {
	Record Record

	OriginalKeywords  string
	CorrectedKeywords string
	Percentage        float64

	EditDistance          int
	AllowableEditDistance int
}

// PlaceHolder accumulates the Places produced while finalizing one query
// (spec §3). It lives for exactly one query and is discarded with the
// rest of the query's arena at query end.
type PlaceHolder struct {
	Places []Place
}

// Add appends a Place to the holder, preserving partition order.
func (p *PlaceHolder) Add(place Place) {
	p.Places = append(p.Places, place)
}

// Location is the external-facing, read-only snapshot of a Place returned
// to callers (spec §3).
type Location struct {
	Key Key

	Name      string
	Country   string
	City      string
	Transport TransportType

	Latitude  float64
	Longitude float64

	PageRank       float64
	CombinedWeight float64
	Percentage     float64

	OriginalKeywords      string
	CorrectedKeywords     string
	EditDistance          int
	AllowableEditDistance int
}

// ToLocation projects a Place to its external Location form.
func ToLocation(p Place, combinedWeight float64) Location {
	return Location{
		Key:                   p.Record.Key,
		Name:                  p.Record.Name,
		Country:               p.Record.Country,
		City:                  p.Record.City,
		Transport:             p.Record.Transport,
		Latitude:              p.Record.Latitude,
		Longitude:             p.Record.Longitude,
		PageRank:              p.Record.PageRank,
		CombinedWeight:        combinedWeight,
		Percentage:            p.Percentage,
		OriginalKeywords:      p.OriginalKeywords,
		CorrectedKeywords:     p.CorrectedKeywords,
		EditDistance:          p.EditDistance,
		AllowableEditDistance: p.AllowableEditDistance,
	}
}
