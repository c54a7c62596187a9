// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"fmt"
	"strings"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/types"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/vocab"
)

// Tamarindo returns the bare Culebra beach used across end-to-end tests.
func Tamarindo() types.WorkItem {
	return types.WorkItem{
		ID:           1,
		Name:         "Tamarindo Beach",
		Municipality: "Culebra",
		Lat:          18.3,
		Lng:          -65.3,
	}
}

// ValidClassification returns a result that passes every classification rule
// without warnings.
func ValidClassification() *types.ClassificationResult {
	return &types.ClassificationResult{
		Tags:      []string{"snorkeling", "scenic", "secluded", "swimming"},
		Amenities: []string{"parking", "restrooms"},
		Features: []types.Feature{
			{
				Title:       "Reef Shelf",
				Description: "A shallow limestone shelf ~40m offshore shelters the cove from open-ocean swell, creating calm snorkeling water most of the year.",
			},
			{
				Title:       "Ferry Access Only",
				Description: "Reachable only by the Culebra passenger ferry or small charter flight, limiting daily visitor volume.",
			},
		},
		Tips: []types.Tip{
			{Category: "Timing", Tip: "Arrive on the first ferry to avoid midday crowds."},
			{Category: "Safety", Tip: "Wear reef shoes; the shoreline entry is rocky in spots."},
			{Category: "Equipment", Tip: "Bring your own snorkel gear; there is no rental shop on-site."},
		},
		FieldData: &types.FieldData{
			BestTime:       "Visit between April and August on a weekday morning, when the trade winds are light and the water over the reef shelf is flat and clear. Winter cold fronts can stir up sand, so check the forecast before taking the early ferry.",
			ParkingDetails: "Limited unpaved lot near the trailhead, fills by mid-morning on weekends.",
			SafetyInfo:     "Calm most days but afternoon wind can raise chop; check conditions before swimming far from shore.",
			AccessLabel:    "short path",
		},
	}
}

// ClassificationJSON renders r as the model would return it.
func ClassificationJSON(r *types.ClassificationResult) string {
	return mustJSON(r)
}

var openers = []string{
	"Most", "Many", "Locals", "Visitors", "Families", "Early",
	"Late", "Small", "Some", "Every", "Quiet", "Short",
}

// SectionContent writes plain sentences about item until the text reaches
// words. Sentences are unique per beach and section type and never open with
// the same word more than twice.
func SectionContent(item types.WorkItem, sectionType string, words int) string {
	var (
		b     strings.Builder
		count int
	)
	for i := 0; count < words; i++ {
		s := fmt.Sprintf("%s guests say the %s at %s has a point %d to note. ",
			openers[i%len(openers)], strings.ReplaceAll(sectionType, "_", " "), item.Name, i+1)
		b.WriteString(s)
		count += len(strings.Fields(s))
	}
	return strings.TrimSpace(b.String())
}

// ValidSections returns a sections result with every required section a few
// words above its minimum.
func ValidSections(item types.WorkItem, v *vocab.Vocabulary) *types.SectionsResult {
	if v == nil {
		v = vocab.Default()
	}
	r := &types.SectionsResult{}
	for _, spec := range v.Sections {
		r.Sections = append(r.Sections, types.Section{
			SectionType: spec.Type,
			Heading:     spec.Heading,
			Content:     SectionContent(item, spec.Type, spec.MinWords+5),
		})
	}
	return r
}

// SectionsJSON renders r as the model would return it.
func SectionsJSON(r *types.SectionsResult) string {
	return mustJSON(r)
}
