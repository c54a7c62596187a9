package prompts

import (
	"fmt"
	"strings"
)

// Region is static geographic context used to steer classification.
type Region struct {
	Name        string
	Context     string
	LeaningTags []string
}

// Known reports whether the region came from the lookup table.
func (r Region) Known() bool {
	return r.Name != ""
}

var (
	regionNorth = Region{
		Name:        "north coast",
		Context:     "Faces the open Atlantic. Winter swell (November to March) brings strong surf and rip currents; calm water only occurs behind reefs or in protected coves.",
		LeaningTags: []string{"surfing", "scenic"},
	}
	regionWest = Region{
		Name:        "west coast",
		Context:     "Atlantic-to-Caribbean transition with world-class winter surf breaks and calmer summer months. Known for sunsets and reef-lined points.",
		LeaningTags: []string{"surfing", "snorkeling", "scenic"},
	}
	regionSouth = Region{
		Name:        "south coast",
		Context:     "Caribbean side, sheltered from Atlantic swell. Drier climate, generally calm and shallow water, mangroves and offshore cays.",
		LeaningTags: []string{"calm-waters", "swimming", "family-friendly"},
	}
	regionEast = Region{
		Name:        "east coast",
		Context:     "Trade-wind exposed shoreline near El Yunque. Mix of reef-protected public beaches and rougher open stretches; ferries leave from Ceiba.",
		LeaningTags: []string{"swimming", "snorkeling"},
	}
	regionIsland = Region{
		Name:        "offshore island",
		Context:     "Reachable only by ferry or small plane, which limits daily visitors. Clear reef water, few services, many beaches reached by dirt roads or trails.",
		LeaningTags: []string{"snorkeling", "secluded", "scenic"},
	}
)

var municipalityRegions = map[string]Region{
	"aguadilla":    regionWest,
	"aguada":       regionWest,
	"anasco":       regionWest,
	"arecibo":      regionNorth,
	"arroyo":       regionSouth,
	"barceloneta":  regionNorth,
	"cabo rojo":    regionWest,
	"camuy":        regionNorth,
	"carolina":     regionNorth,
	"ceiba":        regionEast,
	"culebra":      regionIsland,
	"dorado":       regionNorth,
	"fajardo":      regionEast,
	"guanica":      regionSouth,
	"guayama":      regionSouth,
	"guayanilla":   regionSouth,
	"hatillo":      regionNorth,
	"humacao":      regionEast,
	"isabela":      regionNorth,
	"juana diaz":   regionSouth,
	"lajas":        regionSouth,
	"loiza":        regionNorth,
	"luquillo":     regionEast,
	"manati":       regionNorth,
	"maunabo":      regionEast,
	"mayaguez":     regionWest,
	"naguabo":      regionEast,
	"patillas":     regionSouth,
	"penuelas":     regionSouth,
	"ponce":        regionSouth,
	"quebradillas": regionNorth,
	"rincon":       regionWest,
	"salinas":      regionSouth,
	"san juan":     regionNorth,
	"santa isabel": regionSouth,
	"toa baja":     regionNorth,
	"vega alta":    regionNorth,
	"vega baja":    regionNorth,
	"vieques":      regionIsland,
	"yabucoa":      regionEast,
}

var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
)

func normalizeMunicipality(name string) string {
	return accentFolder.Replace(strings.ToLower(strings.TrimSpace(name)))
}

// RegionFor looks up the coastal region of a municipality. Unknown
// municipalities get a generic context sentence instead of an error.
func RegionFor(municipality string) Region {
	if r, ok := municipalityRegions[normalizeMunicipality(municipality)]; ok {
		return r
	}
	name := strings.TrimSpace(municipality)
	if name == "" {
		name = "an unlisted municipality"
	}
	return Region{
		Context: fmt.Sprintf("This beach is in %s, which has no regional profile. Infer water conditions from the coordinates and any description, and prefer neutral tags when unsure.", name),
	}
}
