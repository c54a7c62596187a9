package pipeline

import (
	"context"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/types"
)

// Output is a stage's decoded generation result, e.g. *types.ClassificationResult.
type Output any

// Stage is the interface that all enrichment stages must implement.
// The Runner drives a stage over many beaches; the stage owns the
// stage-specific parts: which beaches qualify, the prompt, validation and
// where results are written.
type Stage interface {
	// Identity
	Name() string           // e.g., "classify", "sections"
	Dependencies() []string // Stages that must run first
	Description() string

	// Candidates returns beaches still needing this stage with id > after,
	// ascending. limit <= 0 means no limit.
	Candidates(ctx context.Context, after int64, limit int) ([]types.WorkItem, error)

	// Existing returns beaches that already have this stage's output,
	// for re-validation.
	Existing(ctx context.Context, after int64, limit int) ([]types.WorkItem, error)

	// Lookup returns a single beach, or nil when it does not exist.
	Lookup(ctx context.Context, id int64) (*types.WorkItem, error)

	// Prompt renders the prompt for item without calling the provider.
	Prompt(ctx context.Context, item types.WorkItem) (string, error)

	Generate(ctx context.Context, item types.WorkItem) (Output, error)
	Validate(out Output) types.ValidationReport
	Persist(ctx context.Context, item types.WorkItem, out Output, report types.ValidationReport) error

	// LoadExisting reads the persisted output of item.
	LoadExisting(ctx context.Context, item types.WorkItem) (Output, error)
}
