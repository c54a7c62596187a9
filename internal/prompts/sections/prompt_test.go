package sections

import (
	"strings"
	"testing"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/types"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/vocab"
)

func TestBuild(t *testing.T) {
	v := vocab.Default()
	item := types.WorkItem{
		ID:           7,
		Name:         "Playa Flamenco",
		Municipality: "Culebra",
		Lat:          18.33,
		Lng:          -65.31,
		Tags:         []string{"snorkeling", "swimming"},
		Amenities:    []string{"restrooms"},
	}

	got := NewBuilder(v).Build(item)

	for _, sec := range v.Sections {
		if !strings.Contains(got, "- "+sec.Type+" (") {
			t.Errorf("prompt missing section %q", sec.Type)
		}
	}
	for _, want := range []string{"150-300 words", "Known characteristics: snorkeling, swimming", "Known amenities: restrooms"} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if got != NewBuilder(v).Build(item) {
		t.Error("Build() not deterministic")
	}
}

func TestBuild_BareItemOmitsKnownLines(t *testing.T) {
	got := NewBuilder(nil).Build(types.WorkItem{Name: "Bare", Municipality: "Ponce"})
	if strings.Contains(got, "Known characteristics") || strings.Contains(got, "Known amenities") {
		t.Error("bare item should not render known tag or amenity lines")
	}
	if !strings.Contains(got, "south coast") {
		t.Error("expected south coast region context")
	}
}
