package providers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultMaxTokens = 4096

	// rateLimitAttempts is the first call plus one retry after cooldown.
	rateLimitAttempts = 2

	connectionTestPrompt = "Reply with OK"

	// ConnectionTestKey is the prompt key recorded for TestConnection calls.
	ConnectionTestKey = "connection_test"
)

// GeneratorConfig configures a Generator.
type GeneratorConfig struct {
	Model             string
	MaxTokens         int
	MinDelay          time.Duration // gap between the end of one call and the next
	RateLimitCooldown time.Duration // wait before the single retry after a 429
	Recorder          CallRecorder  // optional
	Logger            *slog.Logger
}

// Generator turns prompts into schema-checked, decoded results.
// It is the only component that talks to a Provider.
type Generator struct {
	provider  Provider
	pacer     *Pacer
	model     string
	maxTokens int
	cooldown  time.Duration
	recorder  CallRecorder
	logger    *slog.Logger
}

// NewGenerator wraps provider with pacing, 429 handling and output decoding.
func NewGenerator(provider Provider, cfg GeneratorConfig) *Generator {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Generator{
		provider:  provider,
		pacer:     NewPacer(cfg.MinDelay),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		cooldown:  cfg.RateLimitCooldown,
		recorder:  cfg.Recorder,
		logger:    cfg.Logger.With("provider", provider.Name()),
	}
}

// Provider returns the underlying provider.
func (g *Generator) Provider() Provider {
	return g.provider
}

// Model returns the configured model.
func (g *Generator) Model() string {
	return g.model
}

// Pacer returns the generator's pacer.
func (g *Generator) Pacer() *Pacer {
	return g.pacer
}

// Generate sends req.Prompt and decodes the model's JSON answer into out.
// Every failure is a *GenerationError.
func (g *Generator) Generate(ctx context.Context, req Request, out any) error {
	completion, err := g.complete(ctx, req)
	if err != nil {
		return g.transportError(req.ItemID, err)
	}

	parsed, err := extractReply(completion.Text)
	if err != nil {
		return g.parseError(req.ItemID, completion.Text, err)
	}
	if err := checkShape(req.Schema, parsed); err != nil {
		return g.parseError(req.ItemID, completion.Text, err)
	}
	if err := json.Unmarshal(parsed, out); err != nil {
		return g.parseError(req.ItemID, completion.Text, err)
	}
	return nil
}

// complete performs the paced call, retrying exactly once after a 429.
func (g *Generator) complete(ctx context.Context, req Request) (*Completion, error) {
	var (
		result  *Completion
		attempt int
	)

	err := retry.Do(
		func() error {
			if err := g.pacer.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}
			attempt++

			start := time.Now()
			c, err := g.provider.Complete(ctx, &CompletionRequest{
				Model:     g.model,
				Prompt:    req.Prompt,
				MaxTokens: g.maxTokens,
			})
			g.pacer.Done()
			g.record(ctx, req, attempt, time.Since(start), c, err)

			if err != nil {
				if IsRateLimited(err) {
					g.pacer.Record429()
				}
				return err
			}
			result = c
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(rateLimitAttempts),
		retry.Delay(g.cooldown),
		retry.DelayType(retry.FixedDelay),
		retry.RetryIf(IsRateLimited),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			g.logger.Warn("rate limited, cooling down before retry",
				"item_id", req.ItemID,
				"cooldown", g.cooldown)
		}),
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (g *Generator) record(ctx context.Context, req Request, attempt int, latency time.Duration, c *Completion, err error) {
	if g.recorder == nil {
		return
	}
	rec := CallRecord{
		ItemID:    req.ItemID,
		PromptKey: req.PromptKey,
		Provider:  g.provider.Name(),
		Model:     g.model,
		Attempt:   attempt,
		Latency:   latency,
		Err:       err,
	}
	if c != nil {
		rec.Response = c.Text
		rec.InputTokens = c.InputTokens
		rec.OutputTokens = c.OutputTokens
		if c.Model != "" {
			rec.Model = c.Model
		}
	}
	var se *StatusError
	if errors.As(err, &se) {
		rec.StatusCode = se.StatusCode
	}
	g.recorder.RecordCall(ctx, rec)
}

func (g *Generator) transportError(itemID int64, err error) *GenerationError {
	ge := &GenerationError{
		Kind:    KindTransport,
		ItemID:  itemID,
		Message: err.Error(),
		Err:     err,
	}
	var se *StatusError
	if errors.As(err, &se) {
		ge.Status = se.StatusCode
		ge.Message = excerpt(strings.TrimSpace(se.Body))
	}
	return ge
}

func (g *Generator) parseError(itemID int64, text string, err error) *GenerationError {
	return &GenerationError{
		Kind:    KindParse,
		ItemID:  itemID,
		Message: err.Error(),
		Excerpt: excerpt(text),
		Err:     err,
	}
}

// TestConnection sends a minimal prompt and reports whether the provider
// answered with a non-empty response. The call is paced and recorded like a
// generation call, without the 429 retry.
func (g *Generator) TestConnection(ctx context.Context) bool {
	if err := g.pacer.Wait(ctx); err != nil {
		return false
	}
	start := time.Now()
	c, err := g.provider.Complete(ctx, &CompletionRequest{
		Model:     g.model,
		Prompt:    connectionTestPrompt,
		MaxTokens: 16,
	})
	g.pacer.Done()
	g.record(ctx, Request{Prompt: connectionTestPrompt, PromptKey: ConnectionTestKey}, 1, time.Since(start), c, err)
	if err != nil {
		g.logger.Error("connection test failed", "error", err)
		return false
	}
	return strings.TrimSpace(c.Text) != ""
}
