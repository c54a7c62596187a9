package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicClient_Complete(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s, want /v1/messages", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "secret" {
			t.Errorf("x-api-key = %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") != anthropicAPIVersion {
			t.Errorf("anthropic-version = %q", r.Header.Get("anthropic-version"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(anthropicReply("hello")))
	}))
	defer srv.Close()

	c := NewAnthropicClient(AnthropicConfig{APIKey: "secret", BaseURL: srv.URL, Model: "default-model"})
	res, err := c.Complete(context.Background(), &CompletionRequest{Prompt: "classify this", MaxTokens: 321})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if got.Model != "default-model" || got.MaxTokens != 321 {
		t.Errorf("request = %+v", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "classify this" {
		t.Errorf("messages = %+v", got.Messages)
	}
	if res.Text != "hello" || res.InputTokens != 12 || res.OutputTokens != 7 {
		t.Errorf("completion = %+v", res)
	}
}

func TestAnthropicClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error"}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient(AnthropicConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), &CompletionRequest{Prompt: "p"})

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != 429 || se.Provider != AnthropicName {
		t.Errorf("StatusError = %+v", se)
	}
	if !IsRateLimited(err) {
		t.Error("IsRateLimited() = false, want true")
	}
}

func TestAnthropicClient_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"x","content":[]}`))
	}))
	defer srv.Close()

	res, err := NewAnthropicClient(AnthropicConfig{APIKey: "k", BaseURL: srv.URL}).
		Complete(context.Background(), &CompletionRequest{Prompt: "p"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if res.Text != "" {
		t.Errorf("Text = %q, want empty", res.Text)
	}
}
