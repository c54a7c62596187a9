package llmcall

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/store"
)

// Store provides access to LLM call records.
type Store struct {
	db *store.DB
}

// NewStore creates a new LLM call store.
func NewStore(db *store.DB) *Store {
	return &Store{db: db}
}

// QueryFilter specifies filters for listing LLM calls.
type QueryFilter struct {
	BeachID   int64
	RunID     string
	PromptKey string
	Provider  string
	Success   *bool
	Limit     int
}

const callColumns = `id, run_id, timestamp, beach_id, prompt_key, prompt_hash, provider, model,
	attempt, latency_ms, input_tokens, output_tokens, response, status_code, success, error`

// Insert stores one call.
func (s *Store) Insert(ctx context.Context, c *Call) error {
	return s.db.Execute(ctx, `
		INSERT INTO llm_calls (`+callColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.RunID, c.Timestamp.Format(time.RFC3339Nano), c.BeachID, c.PromptKey, c.PromptHash,
		c.Provider, c.Model, c.Attempt, c.LatencyMs, c.InputTokens, c.OutputTokens,
		c.Response, c.StatusCode, c.Success, c.Error)
}

// Get retrieves a single call by ID, or nil when it does not exist.
func (s *Store) Get(ctx context.Context, id string) (*Call, error) {
	row, err := s.db.QueryOne(ctx, `SELECT `+callColumns+` FROM llm_calls WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	c := parseCall(row)
	return &c, nil
}

// List retrieves calls matching the filter, newest first.
func (s *Store) List(ctx context.Context, f QueryFilter) ([]Call, error) {
	var (
		where []string
		args  []any
	)
	if f.BeachID != 0 {
		where = append(where, "beach_id = ?")
		args = append(args, f.BeachID)
	}
	if f.RunID != "" {
		where = append(where, "run_id = ?")
		args = append(args, f.RunID)
	}
	if f.PromptKey != "" {
		where = append(where, "prompt_key = ?")
		args = append(args, f.PromptKey)
	}
	if f.Provider != "" {
		where = append(where, "provider = ?")
		args = append(args, f.Provider)
	}
	if f.Success != nil {
		where = append(where, "success = ?")
		args = append(args, *f.Success)
	}

	query := `SELECT ` + callColumns + ` FROM llm_calls`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY timestamp DESC, rowid DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	calls := make([]Call, 0, len(rows))
	for _, r := range rows {
		calls = append(calls, parseCall(r))
	}
	return calls, nil
}

// Summary aggregates calls for one run.
type Summary struct {
	Calls        int64
	Failed       int64
	InputTokens  int64
	OutputTokens int64
}

// Summarize aggregates the calls recorded for runID.
func (s *Store) Summarize(ctx context.Context, runID string) (Summary, error) {
	row, err := s.db.QueryOne(ctx, `
		SELECT
			COUNT(*) AS calls,
			COALESCE(SUM(CASE WHEN success THEN 0 ELSE 1 END), 0) AS failed,
			COALESCE(SUM(input_tokens), 0) AS input_tokens,
			COALESCE(SUM(output_tokens), 0) AS output_tokens
		FROM llm_calls WHERE run_id = ?`, runID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Calls:        row.Int64("calls"),
		Failed:       row.Int64("failed"),
		InputTokens:  row.Int64("input_tokens"),
		OutputTokens: row.Int64("output_tokens"),
	}, nil
}

func parseCall(r store.Row) Call {
	c := Call{
		ID:           r.String("id"),
		RunID:        r.String("run_id"),
		BeachID:      r.Int64("beach_id"),
		PromptKey:    r.String("prompt_key"),
		PromptHash:   r.String("prompt_hash"),
		Provider:     r.String("provider"),
		Model:        r.String("model"),
		Attempt:      int(r.Int64("attempt")),
		LatencyMs:    r.Int64("latency_ms"),
		InputTokens:  int(r.Int64("input_tokens")),
		OutputTokens: int(r.Int64("output_tokens")),
		Response:     r.String("response"),
		StatusCode:   int(r.Int64("status_code")),
		Success:      r.Int64("success") != 0,
		Error:        r.String("error"),
	}
	if ts, err := time.Parse(time.RFC3339Nano, r.String("timestamp")); err == nil {
		c.Timestamp = ts
	}
	return c
}
