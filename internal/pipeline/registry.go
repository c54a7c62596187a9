package pipeline

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Sentinel errors for the pipeline package.
var (
	// ErrStageAlreadyRegistered is returned when registering a duplicate stage.
	ErrStageAlreadyRegistered = errors.New("stage already registered")

	// ErrStageNotFound is returned for unknown stage names and missing dependencies.
	ErrStageNotFound = errors.New("stage not found")

	// ErrDependencyCycle is returned when stage dependencies form a cycle.
	ErrDependencyCycle = errors.New("dependency cycle detected")
)

// Registry manages available stages and their dependencies.
type Registry struct {
	mu     sync.RWMutex
	stages map[string]Stage
	order  []string // registration order
}

// NewRegistry creates an empty stage registry.
func NewRegistry() *Registry {
	return &Registry{stages: make(map[string]Stage)}
}

// Register adds a stage to the registry.
func (r *Registry) Register(s Stage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if _, exists := r.stages[name]; exists {
		return fmt.Errorf("%w: %s", ErrStageAlreadyRegistered, name)
	}
	r.stages[name] = s
	r.order = append(r.order, name)
	return nil
}

// Get returns a stage by name.
func (r *Registry) Get(name string) (Stage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stages[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (known: %v)", ErrStageNotFound, name, r.order)
	}
	return s, nil
}

// Names returns all stage names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Ordered returns stages sorted so every stage follows its dependencies.
// Ties keep registration order.
func (r *Registry) Ordered() ([]Stage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pending := make(map[string]int, len(r.order))
	for _, name := range r.order {
		for _, dep := range r.stages[name].Dependencies() {
			if _, ok := r.stages[dep]; !ok {
				return nil, fmt.Errorf("%w: stage %q depends on %q", ErrStageNotFound, name, dep)
			}
		}
		pending[name] = len(r.stages[name].Dependencies())
	}

	// Kahn's algorithm, scanning in registration order for stability
	ordered := make([]Stage, 0, len(r.order))
	done := make(map[string]bool, len(r.order))
	for len(ordered) < len(r.order) {
		progressed := false
		for _, name := range r.order {
			if done[name] || pending[name] > 0 {
				continue
			}
			done[name] = true
			ordered = append(ordered, r.stages[name])
			progressed = true
			for _, other := range r.order {
				if slices.Contains(r.stages[other].Dependencies(), name) {
					pending[other]--
				}
			}
		}
		if !progressed {
			return nil, ErrDependencyCycle
		}
	}
	return ordered, nil
}

// Validate checks that all dependencies exist and form no cycle.
func (r *Registry) Validate() error {
	_, err := r.Ordered()
	return err
}

// DependenciesOf returns the stages that the named stage depends on.
func (r *Registry) DependenciesOf(name string) []Stage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stage, ok := r.stages[name]
	if !ok {
		return nil
	}
	var deps []Stage
	for _, depName := range stage.Dependencies() {
		if dep, ok := r.stages[depName]; ok {
			deps = append(deps, dep)
		}
	}
	return deps
}
