package prompts

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Registry holds the embedded prompts registered by stage builders.
type Registry struct {
	embedded map[string]EmbeddedPrompt
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewRegistry creates an empty prompt registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		embedded: make(map[string]EmbeddedPrompt),
		logger:   logger,
	}
}

// Register registers an embedded prompt.
// This should be called during initialization by each stage.
func (r *Registry) Register(prompt EmbeddedPrompt) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Compute hash if not provided
	if prompt.Hash == "" {
		prompt.Hash = HashText(prompt.Text)
	}

	// Extract variables if not provided
	if prompt.Variables == nil {
		prompt.Variables = ExtractVariables(prompt.Text)
	}

	r.embedded[prompt.Key] = prompt
	r.logger.Debug("registered embedded prompt", "key", prompt.Key, "vars", prompt.Variables)
}

// Get returns the embedded prompt for a key.
func (r *Registry) Get(key string) (EmbeddedPrompt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.embedded[key]
	if !ok {
		return EmbeddedPrompt{}, fmt.Errorf("prompt not found: %s", key)
	}
	return p, nil
}

// Hash returns the text hash for a key, or "" if the key is unknown.
func (r *Registry) Hash(key string) string {
	p, err := r.Get(key)
	if err != nil {
		return ""
	}
	return p.Hash
}

// All returns all registered prompts sorted by key.
func (r *Registry) All() []EmbeddedPrompt {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]EmbeddedPrompt, 0, len(r.embedded))
	for _, p := range r.embedded {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}
