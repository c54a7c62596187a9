package store

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/testutil"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/types"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "beaches.db"), testutil.DiscardLogger())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seed(t *testing.T, db *DB, items ...types.WorkItem) {
	t.Helper()
	for _, item := range items {
		if err := db.InsertBeach(context.Background(), item); err != nil {
			t.Fatalf("InsertBeach(%d) error = %v", item.ID, err)
		}
	}
}

func count(t *testing.T, db *DB, table string, beachID int64) int64 {
	t.Helper()
	row, err := db.QueryOne(context.Background(), `SELECT COUNT(*) AS n FROM `+table+` WHERE beach_id = ?`, beachID)
	if err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return row.Int64("n")
}

func TestDB_QueryInterface(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seed(t, db, testutil.Tamarindo())

	row, err := db.QueryOne(ctx, `SELECT name, lat FROM beaches WHERE id = ?`, 1)
	if err != nil {
		t.Fatalf("QueryOne() error = %v", err)
	}
	if row.String("name") != "Tamarindo Beach" || row.Float("lat") != 18.3 {
		t.Errorf("row = %v", row)
	}

	none, err := db.QueryOne(ctx, `SELECT name FROM beaches WHERE id = ?`, 999)
	if err != nil || none != nil {
		t.Errorf("QueryOne(missing) = %v, %v; want nil, nil", none, err)
	}

	if err := db.Execute(ctx, `UPDATE beaches SET description = ? WHERE id = ?`, "Reef cove.", 1); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	rows, err := db.Query(ctx, `SELECT description FROM beaches`)
	if err != nil || len(rows) != 1 || rows[0].String("description") != "Reef cove." {
		t.Errorf("Query() = %v, %v", rows, err)
	}

	if err := db.Execute(ctx, `SELECT * FROM nope`); err == nil {
		t.Error("expected error for unknown table")
	}
}

func TestDB_Eligibility(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seed(t, db,
		types.WorkItem{ID: 1, Name: "A", Municipality: "Ponce"},
		types.WorkItem{ID: 2, Name: "B", Municipality: "Rincón"},
		types.WorkItem{ID: 3, Name: "C", Municipality: "Culebra"},
		types.WorkItem{ID: 5, Name: "E", Municipality: "Isabela"},
	)

	// Beach 2 is classified, beach 3 has only a best_time narrative.
	if err := NewPersistor(db).Persist(ctx, 2, testutil.ValidClassification()); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}
	if err := db.Execute(ctx, `UPDATE beaches SET best_time = 'Mornings.' WHERE id = 3`); err != nil {
		t.Fatal(err)
	}

	bare, err := db.BareBeaches(ctx, 0, 0)
	if err != nil {
		t.Fatalf("BareBeaches() error = %v", err)
	}
	if ids(bare) != "1,5" {
		t.Errorf("BareBeaches() = %s, want 1,5", ids(bare))
	}

	after, _ := db.BareBeaches(ctx, 1, 0)
	if ids(after) != "5" {
		t.Errorf("BareBeaches(after=1) = %s, want 5", ids(after))
	}

	limited, _ := db.BareBeaches(ctx, 0, 1)
	if ids(limited) != "1" {
		t.Errorf("BareBeaches(limit=1) = %s, want 1", ids(limited))
	}

	classified, _ := db.ClassifiedBeaches(ctx, 0, 0)
	if ids(classified) != "2" {
		t.Errorf("ClassifiedBeaches() = %s, want 2", ids(classified))
	}

	pending, _ := db.BeachesWithoutSections(ctx, 0, 0)
	if ids(pending) != "2" {
		t.Errorf("BeachesWithoutSections() = %s, want 2", ids(pending))
	}

	counts, err := db.CountBeaches(ctx)
	if err != nil {
		t.Fatalf("CountBeaches() error = %v", err)
	}
	if counts != (Counts{Total: 4, Bare: 2, Classified: 1, WithSections: 0}) {
		t.Errorf("CountBeaches() = %+v", counts)
	}
}

func TestDB_GetBeach(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seed(t, db, testutil.Tamarindo())

	got, err := db.GetBeach(ctx, 1)
	if err != nil || got == nil {
		t.Fatalf("GetBeach() = %v, %v", got, err)
	}
	if got.Municipality != "Culebra" || got.Lng != -65.3 || got.Description != "" {
		t.Errorf("GetBeach() = %+v", got)
	}

	missing, err := db.GetBeach(ctx, 42)
	if err != nil || missing != nil {
		t.Errorf("GetBeach(missing) = %v, %v; want nil, nil", missing, err)
	}
}

func ids(items []types.WorkItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = strconv.FormatInt(it.ID, 10)
	}
	return strings.Join(parts, ",")
}

func TestPersist_Scenario(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seed(t, db, testutil.Tamarindo())
	p := NewPersistor(db)
	want := testutil.ValidClassification()

	if err := p.Persist(ctx, 1, want); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}

	for table, n := range map[string]int64{"beach_tags": 4, "beach_amenities": 2, "beach_features": 2, "beach_tips": 3} {
		if got := count(t, db, table, 1); got != n {
			t.Errorf("%s rows = %d, want %d", table, got, n)
		}
	}

	got, err := db.LoadClassification(ctx, 1)
	if err != nil {
		t.Fatalf("LoadClassification() error = %v", err)
	}
	if got.FieldData == nil || got.FieldData.AccessLabel != "short path" || got.FieldData.BestTime != want.FieldData.BestTime {
		t.Errorf("FieldData = %+v", got.FieldData)
	}
	if len(got.Tags) != 4 || got.Tags[0] != "snorkeling" {
		t.Errorf("Tags = %v, want insertion order", got.Tags)
	}
	if got.Features[1].Title != "Ferry Access Only" || got.Tips[2].Category != "Equipment" {
		t.Errorf("features/tips out of order: %+v %+v", got.Features, got.Tips)
	}

	// Re-running is idempotent.
	if err := p.Persist(ctx, 1, want); err != nil {
		t.Fatalf("second Persist() error = %v", err)
	}
	if got := count(t, db, "beach_tags", 1); got != 4 {
		t.Errorf("beach_tags rows after re-run = %d, want 4", got)
	}

	item, err := db.WithClassification(ctx, testutil.Tamarindo())
	if err != nil {
		t.Fatalf("WithClassification() error = %v", err)
	}
	if len(item.Tags) != 4 || len(item.Amenities) != 2 {
		t.Errorf("WithClassification() = %+v", item)
	}
}

func TestPersist_RollsBackOnFailure(t *testing.T) {
	steps := []string{StepClear, StepTags, StepAmenities, StepFeatures, StepTips, StepFieldData}

	for _, failAt := range steps {
		t.Run(failAt, func(t *testing.T) {
			ctx := context.Background()
			db := newTestDB(t)
			seed(t, db, testutil.Tamarindo())

			boom := errors.New("boom")
			p := NewPersistor(db)
			p.afterStep = func(step string) error {
				if step == failAt {
					return boom
				}
				return nil
			}

			err := p.Persist(ctx, 1, testutil.ValidClassification())
			var se *StepError
			if !errors.As(err, &se) || se.Step != failAt || !errors.Is(err, boom) {
				t.Fatalf("Persist() error = %v, want StepError at %s", err, failAt)
			}

			for _, table := range []string{"beach_tags", "beach_amenities", "beach_features", "beach_tips"} {
				if n := count(t, db, table, 1); n != 0 {
					t.Errorf("%s has %d rows after rollback", table, n)
				}
			}
			row, _ := db.QueryOne(ctx, `SELECT best_time FROM beaches WHERE id = 1`)
			if row["best_time"] != nil {
				t.Errorf("best_time = %v after rollback, want NULL", row["best_time"])
			}
		})
	}
}

func TestPersist_ReplacesPreviousClassification(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seed(t, db, testutil.Tamarindo())
	p := NewPersistor(db)

	if err := p.Persist(ctx, 1, testutil.ValidClassification()); err != nil {
		t.Fatalf("first Persist() error = %v", err)
	}

	next := testutil.ValidClassification()
	next.Tags = []string{"surfing", "popular", "family-friendly", "accessible"}
	next.Amenities = []string{"parking", "restrooms", "food"}
	next.Features = []types.Feature{
		{Title: "New Feature A", Description: strings.Repeat("a", 60)},
		{Title: "New Feature B", Description: strings.Repeat("b", 60)},
		{Title: "New Feature C", Description: strings.Repeat("c", 60)},
	}
	next.Tips = next.Tips[:1]
	next.FieldData.BestTime = "Early morning on weekdays before the crowds arrive from the ferry terminal and the trade winds pick up across the bay, when the water is calm and clear."

	if err := p.Persist(ctx, 1, next); err != nil {
		t.Fatalf("second Persist() error = %v", err)
	}

	got, err := db.LoadClassification(ctx, 1)
	if err != nil {
		t.Fatalf("LoadClassification() error = %v", err)
	}
	if !slices.Equal(got.Tags, next.Tags) {
		t.Errorf("Tags = %v, want %v", got.Tags, next.Tags)
	}
	if !slices.Equal(got.Amenities, next.Amenities) {
		t.Errorf("Amenities = %v, want %v", got.Amenities, next.Amenities)
	}
	if len(got.Features) != 3 || got.Features[0].Title != "New Feature A" || got.Features[2].Title != "New Feature C" {
		t.Errorf("Features = %+v", got.Features)
	}
	if len(got.Tips) != 1 {
		t.Errorf("len(Tips) = %d, want 1", len(got.Tips))
	}
	if got.FieldData == nil || got.FieldData.BestTime != next.FieldData.BestTime {
		t.Errorf("FieldData = %+v", got.FieldData)
	}

	// A failed re-classification keeps the previous rows.
	p.afterStep = func(step string) error {
		if step == StepTips {
			return errors.New("boom")
		}
		return nil
	}
	if err := p.Persist(ctx, 1, testutil.ValidClassification()); err == nil {
		t.Fatal("expected error from failing step")
	}
	if n := count(t, db, "beach_tags", 1); n != int64(len(next.Tags)) {
		t.Errorf("beach_tags rows after rollback = %d, want %d", n, len(next.Tags))
	}
	if n := count(t, db, "beach_features", 1); n != 3 {
		t.Errorf("beach_features rows after rollback = %d, want 3", n)
	}
}

func TestPersist_UnknownBeach(t *testing.T) {
	db := newTestDB(t)
	err := NewPersistor(db).Persist(context.Background(), 77, testutil.ValidClassification())
	if err == nil {
		t.Fatal("expected error for unknown beach")
	}
	if n := count(t, db, "beach_tags", 77); n != 0 {
		t.Errorf("beach_tags rows = %d, want 0", n)
	}
}

func TestPersistSections(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	item := testutil.Tamarindo()
	seed(t, db, item)
	p := NewPersistor(db)

	r := testutil.ValidSections(item, nil)
	if err := p.PersistSections(ctx, 1, r, 90); err != nil {
		t.Fatalf("PersistSections() error = %v", err)
	}
	if n := count(t, db, "beach_content_sections", 1); n != 6 {
		t.Errorf("sections = %d, want 6", n)
	}

	// Upsert replaces content in place.
	r.Sections[0].Content = "Rewritten history."
	if err := p.PersistSections(ctx, 1, r, 80); err != nil {
		t.Fatalf("PersistSections() error = %v", err)
	}
	row, _ := db.QueryOne(ctx, `SELECT content, word_count, score FROM beach_content_sections WHERE beach_id = 1 AND section_type = 'history'`)
	if row.String("content") != "Rewritten history." || row.Int64("word_count") != 2 || row.Int64("score") != 80 {
		t.Errorf("history row = %v", row)
	}

	loaded, err := db.LoadSections(ctx, 1)
	if err != nil || len(loaded.Sections) != 6 {
		t.Fatalf("LoadSections() = %v, %v", loaded, err)
	}

	with, _ := db.BeachesWithSections(ctx, 0, 0)
	if len(with) != 1 {
		t.Errorf("BeachesWithSections() = %d, want 1", len(with))
	}

	p.afterStep = func(string) error { return errors.New("disk full") }
	r.Sections[0].Content = "Should not land."
	if err := p.PersistSections(ctx, 1, r, 70); err == nil {
		t.Fatal("expected error")
	}
	row, _ = db.QueryOne(ctx, `SELECT content FROM beach_content_sections WHERE beach_id = 1 AND section_type = 'history'`)
	if row.String("content") != "Rewritten history." {
		t.Errorf("content = %q after rollback", row.String("content"))
	}
}
