package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/config"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/home"
)

func TestNewLogger(t *testing.T) {
	h, err := home.New(t.TempDir())
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}

	t.Run("bad level", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Log.Level = "loud"
		if _, _, err := newLogger(cfg, h); err == nil {
			t.Fatal("expected error for unknown log level")
		}
	})

	t.Run("defaults to home log path", func(t *testing.T) {
		cfg := config.DefaultConfig()
		logger, closeLog, err := newLogger(cfg, h)
		if err != nil {
			t.Fatalf("newLogger() error = %v", err)
		}
		logger.Info("hello")
		if err := closeLog(); err != nil {
			t.Fatalf("close error = %v", err)
		}
		if _, err := os.Stat(h.LogPath()); err != nil {
			t.Errorf("expected log file at %s: %v", h.LogPath(), err)
		}
	})

	t.Run("explicit log file", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Log.File = filepath.Join(t.TempDir(), "custom", "run.log")
		_, closeLog, err := newLogger(cfg, h)
		if err != nil {
			t.Fatalf("newLogger() error = %v", err)
		}
		closeLog()
		if _, err := os.Stat(cfg.Log.File); err != nil {
			t.Errorf("expected log file at %s: %v", cfg.Log.File, err)
		}
	})
}
