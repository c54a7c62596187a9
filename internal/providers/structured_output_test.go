package providers

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestExtractReply(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr error
	}{
		{"plain object", `{"tags":["surfing"]}`, `{"tags":["surfing"]}`, nil},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`, nil},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`, nil},
		{"fence after prose", "Here you go:\n```json\n{\"a\":1}\n```\nEnjoy.", `{"a":1}`, nil},
		{"surrounding prose", "Here is the result:\n{\"a\":{\"b\":2}}\nHope this helps.", `{"a":{"b":2}}`, nil},
		{"empty", "   ", "", errEmptyReply},
		{"refusal", "I cannot classify this beach.", "", errNoJSONReply},
		{"truncated", `{"tags":["surfing"`, "", errNoJSONReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractReply(tt.text)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("extractReply() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractReply() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("extractReply() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCheckShape(t *testing.T) {
	schema := json.RawMessage(`{
		"type": "object",
		"properties": {
			"sections": {"type": "array", "items": {"type": "object", "required": ["section_type"]}}
		},
		"required": ["sections"]
	}`)

	if err := checkShape(schema, json.RawMessage(`{"sections":[{"section_type":"history"}]}`)); err != nil {
		t.Fatalf("checkShape(valid) error = %v", err)
	}

	err := checkShape(schema, json.RawMessage(`{"sections":"nope"}`))
	if err == nil || !strings.Contains(err.Error(), "does not match schema") {
		t.Fatalf("expected schema mismatch, got %v", err)
	}

	if err := checkShape(schema, json.RawMessage(`{"sections":[{}]}`)); err == nil {
		t.Error("expected error for section without section_type")
	}

	if err := checkShape(nil, json.RawMessage(`{"anything":true}`)); err != nil {
		t.Errorf("empty schema should accept anything, got %v", err)
	}
}

func TestCompileSchema_Caches(t *testing.T) {
	schema := json.RawMessage(`{"type":"object"}`)
	a, err := compileSchema(schema)
	if err != nil {
		t.Fatalf("compileSchema() error = %v", err)
	}
	b, err := compileSchema(schema)
	if err != nil {
		t.Fatalf("compileSchema() error = %v", err)
	}
	if a != b {
		t.Error("expected cached schema on second compile")
	}

	if _, err := compileSchema(json.RawMessage(`{"type":`)); err == nil {
		t.Error("expected error for malformed schema")
	}
}
