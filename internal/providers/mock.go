package providers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const MockProviderName = "mock"

// MockResponse is one scripted provider answer.
type MockResponse struct {
	Text string
	Err  error
}

// MockProvider is a Provider for testing.
// Scripted responses are returned in order; once they run out, Respond is
// consulted, then ResponseText.
type MockProvider struct {
	// Configurable behavior
	Latency      time.Duration
	ResponseText string
	Responses    []MockResponse
	Respond      func(req *CompletionRequest) (string, error)

	// State
	mu           sync.Mutex
	prompts      []string
	requestCount atomic.Int64
}

// NewMockProvider creates a mock provider that answers with text.
func NewMockProvider(text string) *MockProvider {
	return &MockProvider{ResponseText: text}
}

// Name returns the provider identifier.
func (p *MockProvider) Name() string {
	return MockProviderName
}

// Complete returns the next scripted response.
func (p *MockProvider) Complete(ctx context.Context, req *CompletionRequest) (*Completion, error) {
	start := time.Now()
	count := p.requestCount.Add(1)

	p.mu.Lock()
	p.prompts = append(p.prompts, req.Prompt)
	p.mu.Unlock()

	if p.Latency > 0 {
		select {
		case <-time.After(p.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	var (
		text string
		err  error
	)
	switch {
	case int(count) <= len(p.Responses):
		r := p.Responses[count-1]
		text, err = r.Text, r.Err
	case p.Respond != nil:
		text, err = p.Respond(req)
	default:
		text = p.ResponseText
	}
	if err != nil {
		return nil, err
	}

	return &Completion{
		Text:         text,
		Model:        req.Model,
		InputTokens:  len(req.Prompt) / 4, // Rough estimate
		OutputTokens: len(text) / 4,
		Latency:      time.Since(start),
	}, nil
}

// RequestCount returns the number of requests made.
func (p *MockProvider) RequestCount() int64 {
	return p.requestCount.Load()
}

// Prompts returns every prompt received, in order.
func (p *MockProvider) Prompts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.prompts...)
}

// Reset clears the request counter and recorded prompts.
func (p *MockProvider) Reset() {
	p.requestCount.Store(0)
	p.mu.Lock()
	p.prompts = nil
	p.mu.Unlock()
}

// Verify interface
var _ Provider = (*MockProvider)(nil)
