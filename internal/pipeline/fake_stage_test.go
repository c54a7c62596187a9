package pipeline

import (
	"context"
	"slices"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/types"
)

// fakeStage is an in-memory Stage. Items with an id in persisted count as
// existing output.
type fakeStage struct {
	name string
	deps []string

	items     []types.WorkItem
	persisted map[int64]bool

	generate func(ctx context.Context, item types.WorkItem) (Output, error)
	validate func(out Output) types.ValidationReport
	persist  func(item types.WorkItem) error

	generated []int64
	loaded    []int64
}

func newFakeStage(name string, deps ...string) *fakeStage {
	return &fakeStage{name: name, deps: deps, persisted: make(map[int64]bool)}
}

func withItems(s *fakeStage, ids ...int64) *fakeStage {
	for _, id := range ids {
		s.items = append(s.items, types.WorkItem{ID: id, Name: "Beach " + string(rune('A'+id-1))})
	}
	return s
}

func (s *fakeStage) Name() string           { return s.name }
func (s *fakeStage) Dependencies() []string { return s.deps }
func (s *fakeStage) Description() string    { return "fake stage" }

func (s *fakeStage) filter(after int64, limit int, want bool) []types.WorkItem {
	var out []types.WorkItem
	for _, it := range s.items {
		if it.ID > after && s.persisted[it.ID] == want {
			out = append(out, it)
		}
	}
	slices.SortFunc(out, func(a, b types.WorkItem) int { return int(a.ID - b.ID) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *fakeStage) Candidates(_ context.Context, after int64, limit int) ([]types.WorkItem, error) {
	return s.filter(after, limit, false), nil
}

func (s *fakeStage) Existing(_ context.Context, after int64, limit int) ([]types.WorkItem, error) {
	return s.filter(after, limit, true), nil
}

func (s *fakeStage) Lookup(_ context.Context, id int64) (*types.WorkItem, error) {
	for _, it := range s.items {
		if it.ID == id {
			return &it, nil
		}
	}
	return nil, nil
}

func (s *fakeStage) Prompt(_ context.Context, item types.WorkItem) (string, error) {
	return "prompt for " + item.Name, nil
}

func (s *fakeStage) Generate(ctx context.Context, item types.WorkItem) (Output, error) {
	s.generated = append(s.generated, item.ID)
	if s.generate != nil {
		return s.generate(ctx, item)
	}
	return item.ID, nil
}

func (s *fakeStage) Validate(out Output) types.ValidationReport {
	if s.validate != nil {
		return s.validate(out)
	}
	return types.ValidationReport{Valid: true, Score: 100}
}

func (s *fakeStage) Persist(_ context.Context, item types.WorkItem, _ Output, _ types.ValidationReport) error {
	if s.persist != nil {
		if err := s.persist(item); err != nil {
			return err
		}
	}
	s.persisted[item.ID] = true
	return nil
}

func (s *fakeStage) LoadExisting(_ context.Context, item types.WorkItem) (Output, error) {
	s.loaded = append(s.loaded, item.ID)
	return item.ID, nil
}
