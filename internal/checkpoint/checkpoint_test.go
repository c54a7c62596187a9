package checkpoint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStore(t *testing.T) {
	t.Run("missing checkpoint is nil", func(t *testing.T) {
		cp, err := NewStore(t.TempDir()).Load("classify")
		if err != nil || cp != nil {
			t.Errorf("Load() = %v, %v; want nil, nil", cp, err)
		}
	})

	t.Run("save and load", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "checkpoints")
		s := NewStore(dir)

		want := Checkpoint{LastBeachID: 42, LastBeachName: "Crash Boat", Processed: 10}
		if err := s.Save("classify", want); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := s.Load("classify")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got.LastBeachID != 42 || got.LastBeachName != "Crash Boat" || got.Processed != 10 {
			t.Errorf("Load() = %+v", got)
		}
		if got.Timestamp.IsZero() || time.Since(got.Timestamp) > time.Minute {
			t.Errorf("Timestamp = %v, want now", got.Timestamp)
		}

		// Other stages are independent.
		if other, _ := s.Load("sections"); other != nil {
			t.Errorf("Load(sections) = %+v, want nil", other)
		}
	})

	t.Run("file format", func(t *testing.T) {
		s := NewStore(t.TempDir())
		if err := s.Save("classify", Checkpoint{LastBeachID: 7, LastBeachName: "Flamenco"}); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(s.Path("classify"))
		if err != nil {
			t.Fatal(err)
		}
		for _, key := range []string{`"last_beach_id": 7`, `"last_beach_name": "Flamenco"`, `"processed"`, `"timestamp"`} {
			if !strings.Contains(string(data), key) {
				t.Errorf("checkpoint file missing %s:\n%s", key, data)
			}
		}
	})

	t.Run("overwrite leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		s := NewStore(dir)
		for i := int64(1); i <= 3; i++ {
			if err := s.Save("classify", Checkpoint{LastBeachID: i}); err != nil {
				t.Fatal(err)
			}
		}
		entries, _ := os.ReadDir(dir)
		if len(entries) != 1 {
			t.Errorf("dir has %d entries, want 1", len(entries))
		}
		got, _ := s.Load("classify")
		if got.LastBeachID != 3 {
			t.Errorf("LastBeachID = %d, want 3", got.LastBeachID)
		}
	})

	t.Run("delete", func(t *testing.T) {
		s := NewStore(t.TempDir())
		if err := s.Delete("classify"); err != nil {
			t.Errorf("Delete(missing) error = %v", err)
		}
		_ = s.Save("classify", Checkpoint{LastBeachID: 1})
		if err := s.Delete("classify"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if cp, _ := s.Load("classify"); cp != nil {
			t.Error("checkpoint should be gone")
		}
	})

	t.Run("corrupt file", func(t *testing.T) {
		s := NewStore(t.TempDir())
		if err := os.WriteFile(s.Path("classify"), []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Load("classify"); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestCheckpoint_String(t *testing.T) {
	cp := &Checkpoint{LastBeachID: 3, LastBeachName: "Sucia", Processed: 20, Timestamp: time.Now().Add(-2 * time.Hour)}
	got := cp.String()
	if !strings.Contains(got, "last beach 3 (Sucia)") || !strings.Contains(got, "2 hours ago") {
		t.Errorf("String() = %q", got)
	}
}
