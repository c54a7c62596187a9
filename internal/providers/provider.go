package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Provider sends a single prompt to a generative text endpoint.
// Implementations make exactly one HTTP round trip per call and never retry;
// pacing and rate-limit handling live in Generator.
type Provider interface {
	// Name returns the provider identifier (e.g., "anthropic").
	Name() string

	// Complete sends one prompt and returns the model's text.
	// Non-200 responses are returned as *StatusError.
	Complete(ctx context.Context, req *CompletionRequest) (*Completion, error)
}

// CompletionRequest is a single-turn prompt.
type CompletionRequest struct {
	Model     string
	Prompt    string
	MaxTokens int
}

// Completion is the raw text returned by a provider.
type Completion struct {
	Text  string `json:"text"`
	Model string `json:"model"`

	// Token counts
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`

	Latency time.Duration `json:"latency"`
}

// Request is one structured generation for a work item.
type Request struct {
	Prompt    string
	ItemID    int64
	PromptKey string

	// Schema is the JSON schema the decoded output must match.
	// An empty schema skips the shape check.
	Schema json.RawMessage
}

// StatusError is a non-200 response from a provider.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// IsRateLimited reports whether err is an HTTP 429 from a provider.
func IsRateLimited(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusTooManyRequests
}

// ErrorKind classifies a failed generation.
type ErrorKind string

const (
	KindTransport ErrorKind = "transport"
	KindParse     ErrorKind = "parse"
)

// GenerationError is returned by Generator.Generate for every failure.
type GenerationError struct {
	Kind   ErrorKind
	ItemID int64

	// Transport failures
	Status  int
	Message string

	// Parse failures: the first 200 characters of the model output.
	Excerpt string

	Err error
}

func (e *GenerationError) Error() string {
	switch {
	case e.Kind == KindParse:
		return fmt.Sprintf("parse error: %s (output: %q)", e.Message, e.Excerpt)
	case e.Status != 0:
		return fmt.Sprintf("transport error (status %d): %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("transport error: %s", e.Message)
	}
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

const excerptLen = 200

func excerpt(s string) string {
	r := []rune(s)
	if len(r) <= excerptLen {
		return s
	}
	return string(r[:excerptLen])
}

// CallRecord describes one provider round trip, successful or not.
type CallRecord struct {
	ItemID    int64
	PromptKey string
	Provider  string
	Model     string
	Attempt   int

	Latency      time.Duration
	InputTokens  int
	OutputTokens int
	Response     string

	StatusCode int
	Err        error
}

// CallRecorder receives a record for every provider call the Generator makes.
type CallRecorder interface {
	RecordCall(ctx context.Context, rec CallRecord)
}
