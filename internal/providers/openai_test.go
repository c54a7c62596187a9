package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestOpenAIClient_Complete(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-test",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"{\"ok\":true}"}}],
			"usage":{"prompt_tokens":20,"completion_tokens":4,"total_tokens":24}
		}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-test"})
	res, err := c.Complete(context.Background(), &CompletionRequest{Prompt: "hi", MaxTokens: 50})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if body["model"] != "gpt-test" {
		t.Errorf("model = %v", body["model"])
	}
	if res.Text != `{"ok":true}` || res.InputTokens != 20 || res.OutputTokens != 4 {
		t.Errorf("completion = %+v", res)
	}
}

func TestOpenAIClient_RateLimitNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), &CompletionRequest{Prompt: "hi"})

	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != 429 {
		t.Fatalf("expected 429 StatusError, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, SDK retries should be disabled", calls.Load())
	}
}
