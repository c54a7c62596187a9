package config

import (
	"strings"
	"testing"
)

func TestDefaultEntries(t *testing.T) {
	entries := DefaultEntries()
	if len(entries) == 0 {
		t.Fatal("expected default entries")
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Key] {
			t.Errorf("duplicate key %q", e.Key)
		}
		seen[e.Key] = true
		if e.Description == "" {
			t.Errorf("key %q has no description", e.Key)
		}
		if strings.Contains(e.Key, "api_key") && !strings.HasPrefix(e.Value.(string), "${") {
			t.Errorf("key %q should reference an environment variable", e.Key)
		}
	}

	for _, key := range []string{
		"provider",
		"pipeline.min_delay_ms",
		"pipeline.rate_limit_cooldown_seconds",
		"pipeline.chunk_pause_seconds",
		"pipeline.batch_size",
		"pipeline.save_interval",
		"database.path",
		"log.file",
		"log.level",
		"vocab.file",
	} {
		if !seen[key] {
			t.Errorf("missing key %q", key)
		}
	}
}

func TestGetDefault(t *testing.T) {
	t.Run("existing_key", func(t *testing.T) {
		e := GetDefault("pipeline.save_interval")
		if e == nil {
			t.Fatal("expected entry")
		}
		if e.Value != 10 {
			t.Errorf("expected 10, got %v", e.Value)
		}
	})

	t.Run("non_existent_key", func(t *testing.T) {
		if e := GetDefault("nonexistent.key"); e != nil {
			t.Errorf("expected nil, got %+v", e)
		}
	})
}
