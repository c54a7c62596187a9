package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/providers"
)

// Config holds beachfinder configuration.
// Stored at: ~/.beachfinder/config.yaml (or ./config.yaml)
type Config struct {
	Provider  string                 `mapstructure:"provider" yaml:"provider"` // active provider name
	Providers map[string]ProviderCfg `mapstructure:"providers" yaml:"providers"`
	Pipeline  PipelineCfg            `mapstructure:"pipeline" yaml:"pipeline"`
	Database  DatabaseCfg            `mapstructure:"database" yaml:"database"`
	Log       LogCfg                 `mapstructure:"log" yaml:"log"`
	Vocab     VocabCfg               `mapstructure:"vocab" yaml:"vocab"`
}

// ProviderCfg configures a generation provider.
type ProviderCfg struct {
	Type           string `mapstructure:"type" yaml:"type"`         // "anthropic", "openai"
	Model          string `mapstructure:"model" yaml:"model"`
	APIKey         string `mapstructure:"api_key" yaml:"api_key"`   // supports ${ENV_VAR} syntax
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"` // empty uses the provider default
	MaxTokens      int    `mapstructure:"max_tokens" yaml:"max_tokens"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// Timeout returns the HTTP timeout.
func (p ProviderCfg) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// PipelineCfg controls pacing and checkpointing.
type PipelineCfg struct {
	MinDelayMs               int     `mapstructure:"min_delay_ms" yaml:"min_delay_ms"`
	RateLimitCooldownSeconds int     `mapstructure:"rate_limit_cooldown_seconds" yaml:"rate_limit_cooldown_seconds"`
	ChunkPauseSeconds        float64 `mapstructure:"chunk_pause_seconds" yaml:"chunk_pause_seconds"`
	BatchSize                int     `mapstructure:"batch_size" yaml:"batch_size"`
	SaveInterval             int     `mapstructure:"save_interval" yaml:"save_interval"`
}

func (p PipelineCfg) MinDelay() time.Duration {
	return time.Duration(p.MinDelayMs) * time.Millisecond
}

func (p PipelineCfg) RateLimitCooldown() time.Duration {
	return time.Duration(p.RateLimitCooldownSeconds) * time.Second
}

func (p PipelineCfg) ChunkPause() time.Duration {
	return time.Duration(p.ChunkPauseSeconds * float64(time.Second))
}

// DatabaseCfg locates the sqlite database. Empty uses the home directory.
type DatabaseCfg struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LogCfg configures logging. An empty file uses the home directory.
type LogCfg struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"` // debug, info, warn, error
}

// VocabCfg points at an optional vocabulary override.
type VocabCfg struct {
	File string `mapstructure:"file" yaml:"file"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider: providers.AnthropicName,
		Providers: map[string]ProviderCfg{
			providers.AnthropicName: {
				Type:           providers.AnthropicName,
				Model:          providers.DefaultAnthropicModel,
				APIKey:         "${ANTHROPIC_API_KEY}",
				MaxTokens:      4096,
				TimeoutSeconds: 120,
			},
			providers.OpenAIName: {
				Type:           providers.OpenAIName,
				Model:          providers.DefaultOpenAIModel,
				APIKey:         "${OPENAI_API_KEY}",
				MaxTokens:      4096,
				TimeoutSeconds: 120,
			},
		},
		Pipeline: PipelineCfg{
			MinDelayMs:               1000,
			RateLimitCooldownSeconds: 60,
			ChunkPauseSeconds:        2,
			BatchSize:                10,
			SaveInterval:             10,
		},
		Log: LogCfg{Level: "info"},
	}
}

// ActiveProvider returns the name and settings of the selected provider.
func (c *Config) ActiveProvider() (string, ProviderCfg, error) {
	p, ok := c.Providers[c.Provider]
	if !ok {
		return "", ProviderCfg{}, fmt.Errorf("provider %q is not configured", c.Provider)
	}
	return c.Provider, p, nil
}

// ToProviderConfigs converts provider settings for providers.NewRegistryFromConfig.
// It resolves all ${ENV_VAR} references in API keys.
func (c *Config) ToProviderConfigs() map[string]providers.ProviderConfig {
	out := make(map[string]providers.ProviderConfig, len(c.Providers))
	for name, p := range c.Providers {
		out[name] = providers.ProviderConfig{
			Type:    p.Type,
			Model:   p.Model,
			APIKey:  ResolveEnvVars(p.APIKey),
			BaseURL: p.BaseURL,
			Timeout: p.Timeout(),
		}
	}
	return out
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if _, _, err := c.ActiveProvider(); err != nil {
		return err
	}
	if c.Pipeline.BatchSize <= 0 {
		return fmt.Errorf("pipeline.batch_size must be positive, got %d", c.Pipeline.BatchSize)
	}
	if c.Pipeline.SaveInterval <= 0 {
		return fmt.Errorf("pipeline.save_interval must be positive, got %d", c.Pipeline.SaveInterval)
	}
	if c.Pipeline.MinDelayMs < 0 || c.Pipeline.RateLimitCooldownSeconds < 0 || c.Pipeline.ChunkPauseSeconds < 0 {
		return fmt.Errorf("pipeline delays must not be negative")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
