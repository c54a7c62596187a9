// Package classify is the stage that tags and describes bare beaches.
package classify

import (
	"context"
	"fmt"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/pipeline"
	classifyprompt "github.com/gadierrrr/puertoricobeachfinder-sub000/internal/prompts/classify"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/providers"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/store"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/types"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/validate"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/vocab"
)

// Name is the stage name used for checkpoints and the CLI.
const Name = "classify"

// Config configures the stage.
type Config struct {
	DB        *store.DB
	Generator *providers.Generator // may be nil for validate-only and prompt inspection
	Vocab     *vocab.Vocabulary
}

// Stage classifies bare beaches: tags, amenities, features, tips and the
// narrative fields on the beach row.
type Stage struct {
	db        *store.DB
	persistor *store.Persistor
	generator *providers.Generator
	builder   *classifyprompt.Builder
	validator *validate.Validator
}

// NewStage creates a classify stage.
func NewStage(cfg Config) *Stage {
	return &Stage{
		db:        cfg.DB,
		persistor: store.NewPersistor(cfg.DB),
		generator: cfg.Generator,
		builder:   classifyprompt.NewBuilder(cfg.Vocab),
		validator: validate.New(cfg.Vocab),
	}
}

func (s *Stage) Name() string           { return Name }
func (s *Stage) Dependencies() []string { return nil }
func (s *Stage) Description() string {
	return "Classify bare beaches: tags, amenities, features, tips and visitor details"
}

func (s *Stage) Candidates(ctx context.Context, after int64, limit int) ([]types.WorkItem, error) {
	return s.db.BareBeaches(ctx, after, limit)
}

func (s *Stage) Existing(ctx context.Context, after int64, limit int) ([]types.WorkItem, error) {
	return s.db.ClassifiedBeaches(ctx, after, limit)
}

func (s *Stage) Lookup(ctx context.Context, id int64) (*types.WorkItem, error) {
	return s.db.GetBeach(ctx, id)
}

func (s *Stage) Prompt(_ context.Context, item types.WorkItem) (string, error) {
	return s.builder.Build(item), nil
}

func (s *Stage) Generate(ctx context.Context, item types.WorkItem) (pipeline.Output, error) {
	if s.generator == nil {
		return nil, fmt.Errorf("classify: no generator configured")
	}
	var result types.ClassificationResult
	err := s.generator.Generate(ctx, providers.Request{
		Prompt:    s.builder.Build(item),
		ItemID:    item.ID,
		PromptKey: classifyprompt.PromptKey,
		Schema:    classifyprompt.OutputSchema,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Stage) Validate(out pipeline.Output) types.ValidationReport {
	result, ok := out.(*types.ClassificationResult)
	if !ok {
		var rep types.ValidationReport
		rep.AddError(fmt.Sprintf("unexpected output type %T", out))
		return rep
	}
	return s.validator.Validate(result)
}

func (s *Stage) Persist(ctx context.Context, item types.WorkItem, out pipeline.Output, _ types.ValidationReport) error {
	result, ok := out.(*types.ClassificationResult)
	if !ok {
		return fmt.Errorf("unexpected output type %T", out)
	}
	if err := s.persistor.Persist(ctx, item.ID, result); err != nil {
		return &pipeline.PersistenceError{BeachID: item.ID, Err: err}
	}
	return nil
}

func (s *Stage) LoadExisting(ctx context.Context, item types.WorkItem) (pipeline.Output, error) {
	return s.db.LoadClassification(ctx, item.ID)
}

var _ pipeline.Stage = (*Stage)(nil)
