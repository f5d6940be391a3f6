// Package catalog holds the static EIA route catalog and the keyword
// resolver that maps a free-text query onto it.
package catalog

import (
	"strings"
	"unicode"

	"github.com/mohammed-shakir/eia-search/internal/core/model"
)

// routes is scored at call time; declaration order breaks ties (first wins).
var routes = []model.Route{
	{
		ID:          "electricity-retail-sales",
		Path:        "electricity/retail-sales",
		Description: "Electricity retail sales and consumption by state and sector (price, sales, revenue, customers).",
		Keywords: []string{
			"electricity", "eletricidade", "electricidad",
			"retail", "sales", "consumption", "consumo",
			"residential", "residencial", "commercial", "comercial",
			"demand", "demanda",
		},
		FacetNames: []string{"stateid", "sectorid"},
	},
	{
		ID:          "electricity-generation",
		Path:        "electricity/electric-power-operational-data",
		Description: "Electric power operational data: generation, fuel consumption and stocks by state and fuel type.",
		Keywords: []string{
			"generation", "geração", "generacion", "generated",
			"power plant", "usina", "fuel", "megawatt", "mwh",
		},
		FacetNames: []string{"location", "sectorid", "fueltypeid"},
	},
	{
		ID:          "natural-gas-consumption",
		Path:        "natural-gas/cons/sum",
		Description: "Natural gas consumption and deliveries by state and end-use sector.",
		Keywords: []string{
			"natural gas", "gás natural", "gas natural",
			"gas consumption", "gas deliveries", "lng", "pipeline",
		},
		FacetNames: []string{"duoarea", "process"},
	},
	{
		ID:          "petroleum-consumption",
		Path:        "petroleum/cons/psup",
		Description: "Petroleum products supplied (consumption proxy) by product and area.",
		Keywords: []string{
			"petroleum", "petróleo", "petroleo", "oil consumption",
			"product supplied", "gasoline", "gasolina", "diesel", "jet fuel",
		},
		FacetNames: []string{"duoarea", "product"},
	},
	{
		ID:          "crude-oil-prices",
		Path:        "petroleum/pri/spt",
		Description: "Spot prices for crude oil and petroleum products (WTI, Brent).",
		Keywords: []string{
			"crude", "spot price", "oil price", "preço do petróleo",
			"wti", "brent", "barrel", "barril",
		},
		FacetNames: []string{"duoarea", "product"},
	},
	{
		ID:          "coal-consumption",
		Path:        "coal/consumption-and-quality",
		Description: "Coal consumption and quality by state and sector.",
		Keywords: []string{
			"coal", "carvão", "carbon mineral", "coal consumption",
		},
		FacetNames: []string{"location", "sector"},
	},
	{
		ID:          "co2-emissions",
		Path:        "co2-emissions/co2-emissions-aggregates",
		Description: "CO2 emissions aggregates by state, sector and fuel.",
		Keywords: []string{
			"co2", "emissions", "emissões", "emisiones",
			"carbon dioxide", "greenhouse", "carbono",
		},
		FacetNames: []string{"stateId", "sectorId", "fuelId"},
	},
	{
		ID:          "total-energy",
		Path:        "total-energy",
		Description: "Total energy overview: production, consumption, trade and prices across all sources.",
		Keywords: []string{
			"total energy", "energia total", "energy overview",
			"primary energy", "energy production",
		},
		FacetNames: []string{"msn"},
	},
}

// Routes returns the catalog in declaration order.
func Routes() []model.Route {
	out := make([]model.Route, len(routes))
	copy(out, routes)
	return out
}

// ByID looks a route up by its catalog id.
func ByID(id string) (model.Route, bool) {
	for _, r := range routes {
		if r.ID == id {
			return r, true
		}
	}
	return model.Route{}, false
}

// Resolve scores every catalog route against the query and returns the
// best match. A keyword counts when it appears in the normalized query,
// so multiword keywords match as phrases. Zero overlap returns ok=false.
// Deterministic: ties go to the earlier catalog entry.
func Resolve(query string) (model.Route, bool) {
	norm := normalize(query)
	if norm == "" {
		return model.Route{}, false
	}

	best := -1
	bestScore := 0
	for i, r := range routes {
		score := 0
		for _, kw := range r.Keywords {
			if strings.Contains(norm, normalize(kw)) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return model.Route{}, false
	}
	return routes[best], true
}

// lowercase, punctuation to spaces, whitespace collapsed
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	wasSpace := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			wasSpace = false
			continue
		}
		if !wasSpace {
			b.WriteByte(' ')
			wasSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
