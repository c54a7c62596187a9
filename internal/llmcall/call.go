// Package llmcall records every provider call into the llm_calls table so
// generated content can be traced back to the prompt and response behind it.
package llmcall

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/providers"
)

// maxResponseLen caps stored response text.
const maxResponseLen = 64 * 1024

// Call represents a recorded provider call.
type Call struct {
	// Unique identifier
	ID    string `json:"id"`
	RunID string `json:"run_id,omitempty"`

	// Timing
	Timestamp time.Time `json:"timestamp"`
	LatencyMs int64     `json:"latency_ms"`

	// Context reference
	BeachID int64 `json:"beach_id,omitempty"`

	// Prompt traceability
	PromptKey  string `json:"prompt_key"`
	PromptHash string `json:"prompt_hash,omitempty"` // hash of the template text used

	// Model info
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Attempt  int    `json:"attempt"`

	// Token usage
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`

	Response string `json:"response"`

	// Status
	StatusCode int    `json:"status_code,omitempty"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// RecordOptions provides context for recording a call.
type RecordOptions struct {
	RunID      string
	PromptHash string
}

// FromRecord creates a Call from a generator call record.
func FromRecord(rec providers.CallRecord, opts RecordOptions) *Call {
	call := &Call{
		ID:           uuid.New().String(),
		RunID:        opts.RunID,
		Timestamp:    time.Now().UTC(),
		LatencyMs:    rec.Latency.Milliseconds(),
		BeachID:      rec.ItemID,
		PromptKey:    rec.PromptKey,
		PromptHash:   opts.PromptHash,
		Provider:     rec.Provider,
		Model:        rec.Model,
		Attempt:      rec.Attempt,
		InputTokens:  rec.InputTokens,
		OutputTokens: rec.OutputTokens,
		Response:     rec.Response,
		StatusCode:   rec.StatusCode,
		Success:      rec.Err == nil,
	}
	call.Response = truncateUTF8(call.Response, maxResponseLen)
	if rec.Err != nil {
		call.Error = rec.Err.Error()
	}
	return call
}

// truncateUTF8 cuts s to at most max bytes without splitting a rune.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
