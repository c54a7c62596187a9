// Package home lays out the beachfinder working directory.
package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the beachfinder home directory.
	DefaultDirName = ".beachfinder"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	DatabaseFileName = "beaches.db"
	LogFileName      = "enrich.log"
)

// Dir represents the beachfinder home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.beachfinder).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}
	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// DatabasePath returns the default sqlite database path.
func (d *Dir) DatabasePath() string {
	return filepath.Join(d.path, "data", DatabaseFileName)
}

// CheckpointsDir holds one checkpoint file per stage.
func (d *Dir) CheckpointsDir() string {
	return filepath.Join(d.path, "checkpoints")
}

// LogsDir returns the log directory.
func (d *Dir) LogsDir() string {
	return filepath.Join(d.path, "logs")
}

// LogPath returns the default enrichment log file.
func (d *Dir) LogPath() string {
	return filepath.Join(d.LogsDir(), LogFileName)
}

// EnsureExists creates the home directory and its subdirectories.
func (d *Dir) EnsureExists() error {
	for _, dir := range []string{filepath.Dir(d.DatabasePath()), d.CheckpointsDir(), d.LogsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
