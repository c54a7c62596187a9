package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/types"
)

// Persist steps, in execution order.
const (
	StepClear     = "clear"
	StepTags      = "tags"
	StepAmenities = "amenities"
	StepFeatures  = "features"
	StepTips      = "tips"
	StepFieldData = "field_data"
	StepSections  = "sections"
)

// Persistor writes validated results. Each call is one transaction: either
// every row lands or none do.
type Persistor struct {
	db *DB

	// afterStep runs after each step inside the transaction; a non-nil
	// error aborts and rolls back. Tests use it to force mid-write failures.
	afterStep func(step string) error
}

// NewPersistor creates a persistor over db.
func NewPersistor(db *DB) *Persistor {
	return &Persistor{db: db}
}

// StepError reports which persist step failed.
type StepError struct {
	BeachID int64
	Step    string
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("persist beach %d: %s: %v", e.BeachID, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// classificationTables holds the child rows owned by one classification.
var classificationTables = []string{"beach_tags", "beach_amenities", "beach_features", "beach_tips"}

// Persist stores a classification: tags, amenities, features, tips and the
// narrative columns on the beach row. The beach's previous child rows are
// replaced, so a re-classified beach never mixes old and new values.
func (p *Persistor) Persist(ctx context.Context, beachID int64, r *types.ClassificationResult) error {
	return p.db.Tx(ctx, func(tx *sql.Tx) error {
		steps := []struct {
			name string
			run  func() error
		}{
			{StepClear, func() error {
				for _, table := range classificationTables {
					if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE beach_id = ?`, beachID); err != nil {
						return err
					}
				}
				return nil
			}},
			{StepTags, func() error {
				for _, tag := range r.Tags {
					if _, err := tx.ExecContext(ctx,
						`INSERT INTO beach_tags (beach_id, tag) VALUES (?, ?) ON CONFLICT DO NOTHING`,
						beachID, tag); err != nil {
						return err
					}
				}
				return nil
			}},
			{StepAmenities, func() error {
				for _, a := range r.Amenities {
					if _, err := tx.ExecContext(ctx,
						`INSERT INTO beach_amenities (beach_id, amenity) VALUES (?, ?) ON CONFLICT DO NOTHING`,
						beachID, a); err != nil {
						return err
					}
				}
				return nil
			}},
			{StepFeatures, func() error {
				for i, f := range r.Features {
					if _, err := tx.ExecContext(ctx,
						`INSERT INTO beach_features (beach_id, title, description, position) VALUES (?, ?, ?, ?) ON CONFLICT DO NOTHING`,
						beachID, f.Title, f.Description, i); err != nil {
						return err
					}
				}
				return nil
			}},
			{StepTips, func() error {
				for i, t := range r.Tips {
					if _, err := tx.ExecContext(ctx,
						`INSERT INTO beach_tips (beach_id, category, tip, position) VALUES (?, ?, ?, ?) ON CONFLICT DO NOTHING`,
						beachID, t.Category, t.Tip, i); err != nil {
						return err
					}
				}
				return nil
			}},
			{StepFieldData, func() error {
				if r.FieldData == nil {
					return fmt.Errorf("field data missing")
				}
				res, err := tx.ExecContext(ctx, `
					UPDATE beaches
					SET best_time = ?, parking_details = ?, safety_info = ?, access_label = ?, updated_at = ?
					WHERE id = ?`,
					r.FieldData.BestTime, r.FieldData.ParkingDetails, r.FieldData.SafetyInfo,
					r.FieldData.AccessLabel, now(), beachID)
				if err != nil {
					return err
				}
				if n, _ := res.RowsAffected(); n == 0 {
					return fmt.Errorf("beach not found")
				}
				return nil
			}},
		}

		for _, step := range steps {
			if err := step.run(); err != nil {
				return &StepError{BeachID: beachID, Step: step.name, Err: err}
			}
			if err := p.hook(step.name); err != nil {
				return &StepError{BeachID: beachID, Step: step.name, Err: err}
			}
		}
		return nil
	})
}

// PersistSections upserts every section of r for a beach in one transaction.
func (p *Persistor) PersistSections(ctx context.Context, beachID int64, r *types.SectionsResult, score int) error {
	return p.db.Tx(ctx, func(tx *sql.Tx) error {
		ts := now()
		for _, sec := range r.Sections {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO beach_content_sections (beach_id, section_type, heading, content, word_count, score, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(beach_id, section_type) DO UPDATE SET
					heading = excluded.heading,
					content = excluded.content,
					word_count = excluded.word_count,
					score = excluded.score,
					updated_at = excluded.updated_at`,
				beachID, sec.SectionType, sec.Heading, sec.Content,
				types.WordCount(sec.Content), score, ts); err != nil {
				return &StepError{BeachID: beachID, Step: StepSections, Err: err}
			}
		}
		if err := p.hook(StepSections); err != nil {
			return &StepError{BeachID: beachID, Step: StepSections, Err: err}
		}
		return nil
	})
}

func (p *Persistor) hook(step string) error {
	if p.afterStep == nil {
		return nil
	}
	return p.afterStep(step)
}
