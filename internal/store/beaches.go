package store

import (
	"context"
	"fmt"
	"time"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/types"
)

const beachColumns = `b.id AS id, b.name AS name, b.municipality AS municipality,
	b.lat AS lat, b.lng AS lng, COALESCE(b.description, '') AS description`

// A bare beach has no tags and no best_time narrative.
const bareCondition = `NOT EXISTS (SELECT 1 FROM beach_tags t WHERE t.beach_id = b.id)
	AND (b.best_time IS NULL OR b.best_time = '')`

const classifiedCondition = `EXISTS (SELECT 1 FROM beach_tags t WHERE t.beach_id = b.id)`

const hasSectionsCondition = `EXISTS (SELECT 1 FROM beach_content_sections s WHERE s.beach_id = b.id)`

// sqlLimit maps 0 (no limit) to SQLite's -1.
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func (d *DB) listBeaches(ctx context.Context, condition string, after int64, limit int) ([]types.WorkItem, error) {
	rows, err := d.Query(ctx, `
		SELECT `+beachColumns+`
		FROM beaches b
		WHERE b.id > ? AND `+condition+`
		ORDER BY b.id
		LIMIT ?`, after, sqlLimit(limit))
	if err != nil {
		return nil, err
	}
	items := make([]types.WorkItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, workItem(r))
	}
	return items, nil
}

// BareBeaches returns beaches with no classification, ascending by id.
func (d *DB) BareBeaches(ctx context.Context, after int64, limit int) ([]types.WorkItem, error) {
	return d.listBeaches(ctx, bareCondition, after, limit)
}

// ClassifiedBeaches returns beaches that already have tags.
func (d *DB) ClassifiedBeaches(ctx context.Context, after int64, limit int) ([]types.WorkItem, error) {
	return d.listBeaches(ctx, classifiedCondition, after, limit)
}

// BeachesWithoutSections returns classified beaches that have no content sections.
func (d *DB) BeachesWithoutSections(ctx context.Context, after int64, limit int) ([]types.WorkItem, error) {
	return d.listBeaches(ctx, classifiedCondition+" AND NOT "+hasSectionsCondition, after, limit)
}

// BeachesWithSections returns beaches that have at least one content section.
func (d *DB) BeachesWithSections(ctx context.Context, after int64, limit int) ([]types.WorkItem, error) {
	return d.listBeaches(ctx, hasSectionsCondition, after, limit)
}

// GetBeach returns a beach by id, or nil when it does not exist.
func (d *DB) GetBeach(ctx context.Context, id int64) (*types.WorkItem, error) {
	row, err := d.QueryOne(ctx, `SELECT `+beachColumns+` FROM beaches b WHERE b.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	item := workItem(row)
	return &item, nil
}

// InsertBeach adds or replaces a beach record.
func (d *DB) InsertBeach(ctx context.Context, item types.WorkItem) error {
	return d.Execute(ctx, `
		INSERT INTO beaches (id, name, municipality, lat, lng, description, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			municipality = excluded.municipality,
			lat = excluded.lat,
			lng = excluded.lng,
			description = excluded.description,
			updated_at = excluded.updated_at`,
		item.ID, item.Name, item.Municipality, item.Lat, item.Lng, nullString(item.Description), now())
}

// WithClassification fills item.Tags and item.Amenities from the store.
func (d *DB) WithClassification(ctx context.Context, item types.WorkItem) (types.WorkItem, error) {
	tags, err := d.column(ctx, "tag", `SELECT tag FROM beach_tags WHERE beach_id = ? ORDER BY tag`, item.ID)
	if err != nil {
		return item, err
	}
	amenities, err := d.column(ctx, "amenity", `SELECT amenity FROM beach_amenities WHERE beach_id = ? ORDER BY amenity`, item.ID)
	if err != nil {
		return item, err
	}
	item.Tags = tags
	item.Amenities = amenities
	return item, nil
}

// LoadClassification reads the persisted classification of a beach.
func (d *DB) LoadClassification(ctx context.Context, id int64) (*types.ClassificationResult, error) {
	beach, err := d.QueryOne(ctx, `
		SELECT best_time, parking_details, safety_info, access_label
		FROM beaches WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if beach == nil {
		return nil, fmt.Errorf("beach %d not found", id)
	}

	r := &types.ClassificationResult{}
	if r.Tags, err = d.column(ctx, "tag", `SELECT tag FROM beach_tags WHERE beach_id = ? ORDER BY rowid`, id); err != nil {
		return nil, err
	}
	if r.Amenities, err = d.column(ctx, "amenity", `SELECT amenity FROM beach_amenities WHERE beach_id = ? ORDER BY rowid`, id); err != nil {
		return nil, err
	}

	features, err := d.Query(ctx, `SELECT title, description FROM beach_features WHERE beach_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	for _, f := range features {
		r.Features = append(r.Features, types.Feature{Title: f.String("title"), Description: f.String("description")})
	}

	tips, err := d.Query(ctx, `SELECT category, tip FROM beach_tips WHERE beach_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	for _, t := range tips {
		r.Tips = append(r.Tips, types.Tip{Category: t.String("category"), Tip: t.String("tip")})
	}

	if beach["best_time"] != nil {
		r.FieldData = &types.FieldData{
			BestTime:       beach.String("best_time"),
			ParkingDetails: beach.String("parking_details"),
			SafetyInfo:     beach.String("safety_info"),
			AccessLabel:    beach.String("access_label"),
		}
	}
	return r, nil
}

// LoadSections reads the persisted content sections of a beach.
func (d *DB) LoadSections(ctx context.Context, id int64) (*types.SectionsResult, error) {
	rows, err := d.Query(ctx, `
		SELECT section_type, heading, content
		FROM beach_content_sections
		WHERE beach_id = ?
		ORDER BY section_type`, id)
	if err != nil {
		return nil, err
	}
	r := &types.SectionsResult{}
	for _, row := range rows {
		r.Sections = append(r.Sections, types.Section{
			SectionType: row.String("section_type"),
			Heading:     row.String("heading"),
			Content:     row.String("content"),
		})
	}
	return r, nil
}

// Counts reports how many beaches are in each enrichment state.
type Counts struct {
	Total        int64
	Bare         int64
	Classified   int64
	WithSections int64
}

// CountBeaches returns enrichment progress counts.
func (d *DB) CountBeaches(ctx context.Context) (Counts, error) {
	row, err := d.QueryOne(ctx, `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN `+bareCondition+` THEN 1 ELSE 0 END), 0) AS bare,
			COALESCE(SUM(CASE WHEN `+classifiedCondition+` THEN 1 ELSE 0 END), 0) AS classified,
			COALESCE(SUM(CASE WHEN `+hasSectionsCondition+` THEN 1 ELSE 0 END), 0) AS with_sections
		FROM beaches b`)
	if err != nil {
		return Counts{}, err
	}
	return Counts{
		Total:        row.Int64("total"),
		Bare:         row.Int64("bare"),
		Classified:   row.Int64("classified"),
		WithSections: row.Int64("with_sections"),
	}, nil
}

// column returns one string column of every row.
func (d *DB) column(ctx context.Context, col, query string, args ...any) ([]string, error) {
	rows, err := d.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.String(col))
	}
	return out, nil
}

func workItem(r Row) types.WorkItem {
	return types.WorkItem{
		ID:           r.Int64("id"),
		Name:         r.String("name"),
		Municipality: r.String("municipality"),
		Lat:          r.Float("lat"),
		Lng:          r.Float("lng"),
		Description:  r.String("description"),
	}
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
