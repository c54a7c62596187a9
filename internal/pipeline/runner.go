// Package pipeline drives enrichment stages over batches of beaches with
// checkpointed, resumable progress.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/checkpoint"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/types"
)

const (
	DefaultBatchSize    = 10
	DefaultSaveInterval = 10
)

// Options configures a single Run.
type Options struct {
	BeachID      int64 // process exactly this beach; ignores queue and checkpoint
	StartID      int64 // resume after this id instead of the checkpoint
	BatchSize    int
	DryRun       bool // generate and validate, never persist
	ValidateOnly bool // re-validate persisted content, never generate
	Limit        int  // cap on candidates, 0 = all
}

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	Checkpoints  *checkpoint.Store
	SaveInterval int
	ChunkPause   time.Duration
	RunID        string // generated when empty
	Logger       *slog.Logger
}

// Runner processes one stage sequentially. It is not safe for concurrent use.
type Runner struct {
	stage        Stage
	checkpoints  *checkpoint.Store
	saveInterval int
	chunkPause   time.Duration
	runID        string
	logger       *slog.Logger
}

// NewRunner creates a runner for stage.
func NewRunner(stage Stage, cfg RunnerConfig) *Runner {
	if cfg.SaveInterval <= 0 {
		cfg.SaveInterval = DefaultSaveInterval
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.New().String()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Runner{
		stage:        stage,
		checkpoints:  cfg.Checkpoints,
		saveInterval: cfg.SaveInterval,
		chunkPause:   cfg.ChunkPause,
		runID:        cfg.RunID,
		logger:       cfg.Logger.With("stage", stage.Name(), "run_id", cfg.RunID),
	}
}

// RunID returns the identifier attached to this runner's runs.
func (r *Runner) RunID() string {
	return r.runID
}

// progress tracks what the checkpoint should say.
type progress struct {
	last      *types.WorkItem
	processed int // includes the resumed checkpoint's count
}

// Run processes every candidate. Per-beach failures are recorded in the
// stats and never stop the run; only a *FatalError is returned.
// Cancelling ctx stops before the next beach and returns partial stats.
func (r *Runner) Run(ctx context.Context, opts Options) (*RunStats, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	stats := &RunStats{
		RunID:     r.runID,
		Stage:     r.stage.Name(),
		DryRun:    opts.DryRun,
		ValidOnly: opts.ValidateOnly,
		StartedAt: time.Now(),
	}

	single := opts.BeachID != 0
	checkpointing := !single && !opts.DryRun && !opts.ValidateOnly && r.checkpoints != nil

	items, prog, err := r.load(ctx, opts, checkpointing)
	if err != nil {
		return nil, err
	}
	stats.Total = len(items)
	r.logger.Info("Starting run",
		"candidates", len(items),
		"batch_size", opts.BatchSize,
		"dry_run", opts.DryRun,
		"validate_only", opts.ValidateOnly)

	chunks := chunk(items, opts.BatchSize)
loop:
	for i, batch := range chunks {
		if i > 0 && r.chunkPause > 0 {
			r.logger.Debug("Pausing between chunks", "pause", r.chunkPause, "chunk", i+1, "chunks", len(chunks))
			if err := sleep(ctx, r.chunkPause); err != nil {
				stats.Interrupted = true
				break loop
			}
		}
		for _, item := range batch {
			if ctx.Err() != nil {
				stats.Interrupted = true
				break loop
			}
			if interrupted := r.processItem(ctx, item, opts, stats); interrupted {
				stats.Interrupted = true
				break loop
			}

			done := item
			prog.last = &done
			prog.processed++
			if checkpointing && stats.Processed%r.saveInterval == 0 {
				r.saveCheckpoint(prog)
			}
		}
	}
	stats.Duration = time.Since(stats.StartedAt)

	if checkpointing {
		r.finishCheckpoint(opts, stats, prog)
	}

	r.logger.Info("Run finished",
		"processed", stats.Processed,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"interrupted", stats.Interrupted,
		"duration", stats.Duration)
	return stats, nil
}

// load selects the beaches to process and the resume point.
func (r *Runner) load(ctx context.Context, opts Options, checkpointing bool) ([]types.WorkItem, progress, error) {
	var prog progress

	if opts.BeachID != 0 {
		item, err := r.stage.Lookup(ctx, opts.BeachID)
		if err != nil {
			return nil, prog, &FatalError{Message: fmt.Sprintf("look up beach %d", opts.BeachID), Err: err}
		}
		if item == nil {
			return nil, prog, &FatalError{Message: fmt.Sprintf("beach %d not found", opts.BeachID)}
		}
		return []types.WorkItem{*item}, prog, nil
	}

	after := opts.StartID
	if after == 0 && checkpointing {
		cp, err := r.checkpoints.Load(r.stage.Name())
		if err != nil {
			return nil, prog, &FatalError{Message: "load checkpoint", Err: err}
		}
		if cp != nil {
			r.logger.Info("Resuming from checkpoint", "checkpoint", cp.String())
			after = cp.LastBeachID
			prog.processed = cp.Processed
		}
	}

	var (
		items []types.WorkItem
		err   error
	)
	if opts.ValidateOnly {
		items, err = r.stage.Existing(ctx, after, opts.Limit)
	} else {
		items, err = r.stage.Candidates(ctx, after, opts.Limit)
	}
	if err != nil {
		return nil, prog, &FatalError{Message: "load candidates", Err: err}
	}
	return items, prog, nil
}

// processItem runs one beach through generate, validate and persist.
// It reports true when ctx was cancelled before the beach finished.
func (r *Runner) processItem(ctx context.Context, item types.WorkItem, opts Options, stats *RunStats) bool {
	logger := r.logger.With("beach_id", item.ID, "beach", item.Name)

	var (
		out Output
		err error
	)
	if opts.ValidateOnly {
		out, err = r.stage.LoadExisting(ctx, item)
		if err != nil {
			err = &PersistenceError{BeachID: item.ID, Err: fmt.Errorf("load existing: %w", err)}
		}
	} else {
		out, err = r.stage.Generate(ctx, item)
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				logger.Warn("Interrupted during generation")
				return true
			}
			err = classifyGeneration(item.ID, err)
		}
	}
	stats.Processed++
	if err != nil {
		r.recordFailure(logger, item, err, stats)
		return false
	}

	report := r.stage.Validate(out)
	for _, w := range report.Warnings {
		logger.Warn("Validation warning", "warning", w)
	}
	stats.Warnings += len(report.Warnings)
	if !report.Valid {
		r.recordFailure(logger, item, &ValidationError{BeachID: item.ID, Messages: report.Errors}, stats)
		return false
	}

	if opts.DryRun || opts.ValidateOnly {
		stats.Succeeded++
		logger.Info("Validated", "score", report.Score, "persisted", false)
		return false
	}

	if err := r.stage.Persist(ctx, item, out, report); err != nil {
		var pe *PersistenceError
		if !errors.As(err, &pe) {
			err = &PersistenceError{BeachID: item.ID, Err: err}
		}
		r.recordFailure(logger, item, err, stats)
		return false
	}

	stats.Succeeded++
	logger.Info("Enriched", "score", report.Score)
	return false
}

func (r *Runner) recordFailure(logger *slog.Logger, item types.WorkItem, err error, stats *RunStats) {
	kind := ErrorKind(err)
	logger.Error("Beach failed", "kind", kind, "error", err)
	stats.fail(ItemError{
		BeachID: item.ID,
		Name:    item.Name,
		Kind:    kind,
		Message: err.Error(),
	})
}

func (r *Runner) saveCheckpoint(prog progress) {
	if prog.last == nil {
		return
	}
	cp := checkpoint.Checkpoint{
		LastBeachID:   prog.last.ID,
		LastBeachName: prog.last.Name,
		Processed:     prog.processed,
	}
	if err := r.checkpoints.Save(r.stage.Name(), cp); err != nil {
		r.logger.Warn("Failed to save checkpoint", "error", err)
		return
	}
	r.logger.Debug("Checkpoint saved", "last_beach_id", cp.LastBeachID, "processed", cp.Processed)
}

// finishCheckpoint clears the checkpoint after a clean full run and saves
// the final position otherwise.
func (r *Runner) finishCheckpoint(opts Options, stats *RunStats, prog progress) {
	clean := !stats.Interrupted && stats.Failed == 0 && opts.Limit == 0
	if clean {
		if err := r.checkpoints.Delete(r.stage.Name()); err != nil {
			r.logger.Warn("Failed to clear checkpoint", "error", err)
			return
		}
		r.logger.Info("Run complete, checkpoint cleared")
		return
	}
	r.saveCheckpoint(prog)
}

func chunk(items []types.WorkItem, size int) [][]types.WorkItem {
	var chunks [][]types.WorkItem
	for size < len(items) {
		items, chunks = items[size:], append(chunks, items[:size])
	}
	if len(items) > 0 {
		chunks = append(chunks, items)
	}
	return chunks
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
