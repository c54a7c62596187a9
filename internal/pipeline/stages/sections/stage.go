// Package sections is the stage that writes long-form content sections for
// classified beaches.
package sections

import (
	"context"
	"fmt"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/pipeline"
	sectionsprompt "github.com/gadierrrr/puertoricobeachfinder-sub000/internal/prompts/sections"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/providers"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/store"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/types"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/validate"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/vocab"
)

// Name is the stage name used for checkpoints and the CLI.
const Name = "sections"

// Config configures the stage.
type Config struct {
	DB        *store.DB
	Generator *providers.Generator
	Vocab     *vocab.Vocabulary

	// Memo collects sentences across beaches to flag repeated content.
	// The caller owns it; nil starts an empty one.
	Memo *validate.SentenceMemo
}

// Stage generates content sections for beaches that are classified but have
// no sections yet.
type Stage struct {
	db        *store.DB
	persistor *store.Persistor
	generator *providers.Generator
	builder   *sectionsprompt.Builder
	validator *validate.SectionValidator
	memo      *validate.SentenceMemo
}

// NewStage creates a sections stage.
func NewStage(cfg Config) *Stage {
	if cfg.Memo == nil {
		cfg.Memo = validate.NewSentenceMemo()
	}
	return &Stage{
		db:        cfg.DB,
		persistor: store.NewPersistor(cfg.DB),
		generator: cfg.Generator,
		builder:   sectionsprompt.NewBuilder(cfg.Vocab),
		validator: validate.NewSectionValidator(cfg.Vocab),
		memo:      cfg.Memo,
	}
}

func (s *Stage) Name() string           { return Name }
func (s *Stage) Dependencies() []string { return []string{"classify"} }
func (s *Stage) Description() string {
	return "Write long-form content sections for classified beaches"
}

func (s *Stage) Candidates(ctx context.Context, after int64, limit int) ([]types.WorkItem, error) {
	return s.db.BeachesWithoutSections(ctx, after, limit)
}

func (s *Stage) Existing(ctx context.Context, after int64, limit int) ([]types.WorkItem, error) {
	return s.db.BeachesWithSections(ctx, after, limit)
}

func (s *Stage) Lookup(ctx context.Context, id int64) (*types.WorkItem, error) {
	return s.db.GetBeach(ctx, id)
}

// Prompt includes the beach's persisted tags and amenities.
func (s *Stage) Prompt(ctx context.Context, item types.WorkItem) (string, error) {
	item, err := s.db.WithClassification(ctx, item)
	if err != nil {
		return "", fmt.Errorf("load classification: %w", err)
	}
	return s.builder.Build(item), nil
}

func (s *Stage) Generate(ctx context.Context, item types.WorkItem) (pipeline.Output, error) {
	if s.generator == nil {
		return nil, fmt.Errorf("sections: no generator configured")
	}
	prompt, err := s.Prompt(ctx, item)
	if err != nil {
		return nil, err
	}
	var result types.SectionsResult
	err = s.generator.Generate(ctx, providers.Request{
		Prompt:    prompt,
		ItemID:    item.ID,
		PromptKey: sectionsprompt.PromptKey,
		Schema:    sectionsprompt.OutputSchema,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Stage) Validate(out pipeline.Output) types.ValidationReport {
	result, ok := out.(*types.SectionsResult)
	if !ok {
		var rep types.ValidationReport
		rep.AddError(fmt.Sprintf("unexpected output type %T", out))
		return rep
	}
	return s.validator.Validate(result, s.memo)
}

func (s *Stage) Persist(ctx context.Context, item types.WorkItem, out pipeline.Output, report types.ValidationReport) error {
	result, ok := out.(*types.SectionsResult)
	if !ok {
		return fmt.Errorf("unexpected output type %T", out)
	}
	if err := s.persistor.PersistSections(ctx, item.ID, result, report.Score); err != nil {
		return &pipeline.PersistenceError{BeachID: item.ID, Err: err}
	}
	return nil
}

func (s *Stage) LoadExisting(ctx context.Context, item types.WorkItem) (pipeline.Output, error) {
	return s.db.LoadSections(ctx, item.ID)
}

var _ pipeline.Stage = (*Stage)(nil)
