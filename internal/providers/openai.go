package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	OpenAIName         = "openai"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// OpenAIConfig holds configuration for the OpenAI chat client.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	BaseURL    string        // Optional (tests or compatible gateways)
	Timeout    time.Duration // HTTP timeout
	HTTPClient *http.Client  // Optional (tests)
}

// OpenAIClient implements Provider using the official OpenAI SDK.
// SDK retries are disabled so the Generator owns the retry policy.
type OpenAIClient struct {
	model  string
	client openai.Client
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		model:  cfg.Model,
		client: openai.NewClient(opts...),
	}
}

// Name returns the provider identifier.
func (c *OpenAIClient) Name() string {
	return OpenAIName
}

// Model returns the configured default model.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Complete sends one user message as a chat completion.
func (c *OpenAIClient) Complete(ctx context.Context, req *CompletionRequest) (*Completion, error) {
	start := time.Now()

	model := req.Model
	if model == "" {
		model = c.model
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, mapOpenAIError(err)
	}

	completion := &Completion{
		Model:        resp.Model,
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
		Latency:      time.Since(start),
	}
	if len(resp.Choices) > 0 {
		completion.Text = resp.Choices[0].Message.Content
	}
	return completion, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		body := apiErr.Message
		if body == "" {
			body = http.StatusText(apiErr.StatusCode)
		}
		return &StatusError{
			Provider:   OpenAIName,
			StatusCode: apiErr.StatusCode,
			Body:       body,
		}
	}
	return fmt.Errorf("request failed: %w", err)
}
