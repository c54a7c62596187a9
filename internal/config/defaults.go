package config

// Entry is one configuration key with its default and meaning.
type Entry struct {
	Key         string
	Value       any
	Description string
}

// DefaultEntries returns every known key with its default value.
// They seed viper, so each key can also be set through BEACHFINDER_<KEY>.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	anthropic := d.Providers["anthropic"]
	openai := d.Providers["openai"]

	return []Entry{
		{
			Key:         "provider",
			Value:       d.Provider,
			Description: "Provider used for generation (a key under providers)",
		},

		// Providers - Anthropic
		{
			Key:         "providers.anthropic.type",
			Value:       anthropic.Type,
			Description: "Provider type for Anthropic",
		},
		{
			Key:         "providers.anthropic.model",
			Value:       anthropic.Model,
			Description: "Model for Anthropic",
		},
		{
			Key:         "providers.anthropic.api_key",
			Value:       anthropic.APIKey,
			Description: "Anthropic API key (uses environment variable)",
		},
		{
			Key:         "providers.anthropic.base_url",
			Value:       anthropic.BaseURL,
			Description: "Anthropic API base URL (empty for the public endpoint)",
		},
		{
			Key:         "providers.anthropic.max_tokens",
			Value:       anthropic.MaxTokens,
			Description: "Token budget per Anthropic response",
		},
		{
			Key:         "providers.anthropic.timeout_seconds",
			Value:       anthropic.TimeoutSeconds,
			Description: "HTTP timeout in seconds for Anthropic requests",
		},

		// Providers - OpenAI
		{
			Key:         "providers.openai.type",
			Value:       openai.Type,
			Description: "Provider type for OpenAI",
		},
		{
			Key:         "providers.openai.model",
			Value:       openai.Model,
			Description: "Model for OpenAI",
		},
		{
			Key:         "providers.openai.api_key",
			Value:       openai.APIKey,
			Description: "OpenAI API key (uses environment variable)",
		},
		{
			Key:         "providers.openai.base_url",
			Value:       openai.BaseURL,
			Description: "OpenAI-compatible base URL (empty for the public endpoint)",
		},
		{
			Key:         "providers.openai.max_tokens",
			Value:       openai.MaxTokens,
			Description: "Token budget per OpenAI response",
		},
		{
			Key:         "providers.openai.timeout_seconds",
			Value:       openai.TimeoutSeconds,
			Description: "HTTP timeout in seconds for OpenAI requests",
		},

		// Pipeline
		{
			Key:         "pipeline.min_delay_ms",
			Value:       d.Pipeline.MinDelayMs,
			Description: "Minimum gap between the end of one provider call and the start of the next",
		},
		{
			Key:         "pipeline.rate_limit_cooldown_seconds",
			Value:       d.Pipeline.RateLimitCooldownSeconds,
			Description: "Wait before the single retry after an HTTP 429",
		},
		{
			Key:         "pipeline.chunk_pause_seconds",
			Value:       d.Pipeline.ChunkPauseSeconds,
			Description: "Pause between batch chunks",
		},
		{
			Key:         "pipeline.batch_size",
			Value:       d.Pipeline.BatchSize,
			Description: "Beaches per chunk",
		},
		{
			Key:         "pipeline.save_interval",
			Value:       d.Pipeline.SaveInterval,
			Description: "Beaches attempted between checkpoint writes",
		},

		// Storage and logging
		{
			Key:         "database.path",
			Value:       d.Database.Path,
			Description: "SQLite database path (empty for <home>/data/beaches.db)",
		},
		{
			Key:         "log.file",
			Value:       d.Log.File,
			Description: "Log file path (empty for <home>/logs/enrich.log)",
		},
		{
			Key:         "log.level",
			Value:       d.Log.Level,
			Description: "Log level: debug, info, warn or error",
		},
		{
			Key:         "vocab.file",
			Value:       d.Vocab.File,
			Description: "YAML vocabulary override (empty for the built-in vocabulary)",
		},
	}
}

// GetDefault returns the default entry for a key, or nil.
func GetDefault(key string) *Entry {
	for _, e := range DefaultEntries() {
		if e.Key == key {
			return &e
		}
	}
	return nil
}
