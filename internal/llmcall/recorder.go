package llmcall

import (
	"context"
	"log/slog"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/providers"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/store"
)

// PromptHasher resolves a prompt key to the hash of its template text.
type PromptHasher interface {
	Hash(key string) string
}

// Recorder writes provider calls to the llm_calls table. Recording is best
// effort: a failed insert is logged and never fails the run.
type Recorder struct {
	store  *Store
	runID  string
	hashes PromptHasher
	logger *slog.Logger
}

// NewRecorder creates a recorder tagging every call with runID.
// hashes may be nil.
func NewRecorder(db *store.DB, runID string, hashes PromptHasher, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		store:  NewStore(db),
		runID:  runID,
		hashes: hashes,
		logger: logger,
	}
}

// RecordCall implements providers.CallRecorder.
func (r *Recorder) RecordCall(ctx context.Context, rec providers.CallRecord) {
	opts := RecordOptions{RunID: r.runID}
	if r.hashes != nil && rec.PromptKey != "" {
		opts.PromptHash = r.hashes.Hash(rec.PromptKey)
	}

	call := FromRecord(rec, opts)
	// The run context may already be cancelled; the record should still land.
	if err := r.store.Insert(context.WithoutCancel(ctx), call); err != nil {
		r.logger.Warn("failed to record LLM call",
			"error", err,
			"beach_id", rec.ItemID,
			"prompt_key", rec.PromptKey)
	}
}

// RunID returns the run identifier attached to recorded calls.
func (r *Recorder) RunID() string {
	return r.runID
}

var _ providers.CallRecorder = (*Recorder)(nil)
