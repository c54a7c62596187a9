package sections

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/pipeline"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/providers"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/store"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/testutil"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/types"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/validate"
)

func flamenco() types.WorkItem {
	return types.WorkItem{ID: 2, Name: "Flamenco Beach", Municipality: "Culebra", Lat: 18.33, Lng: -65.32}
}

func setup(t *testing.T, items ...types.WorkItem) *store.DB {
	t.Helper()
	ctx := context.Background()
	db, err := store.Open(filepath.Join(t.TempDir(), "beaches.db"), testutil.DiscardLogger())
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	p := store.NewPersistor(db)
	for _, item := range items {
		if err := db.InsertBeach(ctx, item); err != nil {
			t.Fatalf("InsertBeach() error = %v", err)
		}
		if err := p.Persist(ctx, item.ID, testutil.ValidClassification()); err != nil {
			t.Fatalf("Persist() error = %v", err)
		}
	}
	return db
}

func newRunner(db *store.DB, provider providers.Provider, memo *validate.SentenceMemo) (*Stage, *pipeline.Runner) {
	logger := testutil.DiscardLogger()
	gen := providers.NewGenerator(provider, providers.GeneratorConfig{Logger: logger})
	stage := NewStage(Config{DB: db, Generator: gen, Memo: memo})
	return stage, pipeline.NewRunner(stage, pipeline.RunnerConfig{Logger: logger})
}

func TestSections_EndToEnd(t *testing.T) {
	ctx := context.Background()
	db := setup(t, testutil.Tamarindo())
	provider := providers.NewMockProvider(testutil.SectionsJSON(testutil.ValidSections(testutil.Tamarindo(), nil)))
	_, runner := newRunner(db, provider, nil)

	stats, err := runner.Run(ctx, pipeline.Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Succeeded != 1 || stats.Warnings != 0 {
		t.Fatalf("stats = %+v", stats)
	}

	prompt := provider.Prompts()[0]
	if !strings.Contains(prompt, "Known characteristics:") || !strings.Contains(prompt, "snorkeling") {
		t.Error("prompt does not carry the persisted classification")
	}

	got, err := db.LoadSections(ctx, 1)
	if err != nil {
		t.Fatalf("LoadSections() error = %v", err)
	}
	if len(got.Sections) != 6 {
		t.Errorf("persisted %d sections, want 6", len(got.Sections))
	}
}

func TestSections_RepeatedContentAcrossBeaches(t *testing.T) {
	db := setup(t, testutil.Tamarindo(), flamenco())
	// both beaches receive identical text
	provider := providers.NewMockProvider(testutil.SectionsJSON(testutil.ValidSections(testutil.Tamarindo(), nil)))
	memo := validate.NewSentenceMemo()
	_, runner := newRunner(db, provider, memo)

	stats, err := runner.Run(context.Background(), pipeline.Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Succeeded != 2 {
		t.Errorf("repeats must not block persistence: %+v", stats)
	}
	if stats.Warnings == 0 {
		t.Error("expected repeat warnings for the second beach")
	}
	if memo.Len() == 0 {
		t.Error("caller-owned memo was not filled")
	}
}

func TestSections_MissingSectionFails(t *testing.T) {
	db := setup(t, testutil.Tamarindo())
	result := testutil.ValidSections(testutil.Tamarindo(), nil)
	result.Sections = result.Sections[1:]
	_, runner := newRunner(db, providers.NewMockProvider(testutil.SectionsJSON(result)), nil)

	stats, err := runner.Run(context.Background(), pipeline.Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(stats.Errors) != 1 || !strings.Contains(stats.Errors[0].Message, "missing section") {
		t.Errorf("errors = %+v", stats.Errors)
	}
}

func TestSections_Candidates(t *testing.T) {
	ctx := context.Background()
	db := setup(t, testutil.Tamarindo())
	bare := flamenco()
	if err := db.InsertBeach(ctx, bare); err != nil {
		t.Fatal(err)
	}
	stage, _ := newRunner(db, providers.NewMockProvider("{}"), nil)

	items, err := stage.Candidates(ctx, 0, 0)
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Errorf("candidates = %+v, want only the classified beach", items)
	}
	if deps := stage.Dependencies(); len(deps) != 1 || deps[0] != "classify" {
		t.Errorf("Dependencies() = %v", deps)
	}
}
