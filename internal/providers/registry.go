package providers

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// ErrNoAPIKey is returned when a provider is configured without an API key.
var ErrNoAPIKey = errors.New("provider API key not set")

// ProviderConfig matches config.ProviderCfg with a resolved API key.
type ProviderConfig struct {
	Type    string // "anthropic", "openai"
	Model   string
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// New creates a provider based on its type.
func New(cfg ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoAPIKey, cfg.Type)
	}
	switch cfg.Type {
	case AnthropicName:
		return NewAnthropicClient(AnthropicConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}), nil
	case OpenAIName:
		return NewOpenAIClient(OpenAIConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %q", cfg.Type)
	}
}

// Registry holds the configured providers by name.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	logger    *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		providers: make(map[string]Provider),
		logger:    logger,
	}
}

// NewRegistryFromConfig creates a registry with every provider that has an
// API key. Providers without one are skipped with a debug log.
func NewRegistryFromConfig(cfgs map[string]ProviderConfig, logger *slog.Logger) *Registry {
	r := NewRegistry(logger)
	for name, cfg := range cfgs {
		if cfg.Type == "" {
			cfg.Type = name
		}
		p, err := New(cfg)
		if err != nil {
			r.logger.Debug("skipping provider", "name", name, "reason", err)
			continue
		}
		r.Register(name, p)
	}
	return r
}

// Register registers a provider by name.
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
	r.logger.Debug("registered provider", "name", name)
}

// Get returns a provider by name.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider not found: %s", name)
	}
	return p, nil
}

// Has checks if a provider is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[name]
	return ok
}

// List returns all registered provider names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
