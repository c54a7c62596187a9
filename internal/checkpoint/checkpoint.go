// Package checkpoint persists batch progress so an interrupted run can resume
// after the last attempted beach.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
)

// Checkpoint is the resume point of one stage.
type Checkpoint struct {
	LastBeachID   int64     `json:"last_beach_id"`
	LastBeachName string    `json:"last_beach_name"`
	Processed     int       `json:"processed"`
	Timestamp     time.Time `json:"timestamp"`
}

// String renders the checkpoint for humans.
func (c *Checkpoint) String() string {
	return fmt.Sprintf("last beach %d (%s), %d processed, saved %s",
		c.LastBeachID, c.LastBeachName, c.Processed, humanize.Time(c.Timestamp))
}

// Store reads and writes one checkpoint file per stage under a directory.
// It assumes a single writer.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the file path for a stage.
func (s *Store) Path(stage string) string {
	return filepath.Join(s.dir, stage+".json")
}

// Load returns the stage's checkpoint, or nil when none exists.
func (s *Store) Load(stage string) (*Checkpoint, error) {
	data, err := os.ReadFile(s.Path(stage))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("failed to parse checkpoint %s: %w", s.Path(stage), err)
	}
	return &cp, nil
}

// Save writes cp atomically: a temp file in the same directory is renamed
// over the previous checkpoint.
func (s *Store) Save(stage string, cp Checkpoint) error {
	if cp.Timestamp.IsZero() {
		cp.Timestamp = time.Now()
	}
	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, stage+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp checkpoint: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close checkpoint: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path(stage)); err != nil {
		return fmt.Errorf("failed to replace checkpoint: %w", err)
	}
	return nil
}

// Delete removes the stage's checkpoint. A missing file is not an error.
func (s *Store) Delete(stage string) error {
	if err := os.Remove(s.Path(stage)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete checkpoint: %w", err)
	}
	return nil
}
