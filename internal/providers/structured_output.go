package providers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	errEmptyReply  = errors.New("empty reply")
	errNoJSONReply = errors.New("reply contains no JSON object")
)

// extractReply finds the JSON object in a model reply. Models often wrap the
// object in a markdown fence or add a sentence before or after it, so the
// reply is tried as-is, then the first fenced block, then the span from the
// first '{' to the last '}'.
func extractReply(text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errEmptyReply
	}
	for _, candidate := range []string{text, fencedBlock(text), braceSpan(text)} {
		if candidate != "" && json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}
	return nil, errNoJSONReply
}

// fencedBlock returns the body of the first ``` fence, or "" if there is none.
func fencedBlock(text string) string {
	open := strings.Index(text, "```")
	if open < 0 {
		return ""
	}
	body := text[open+3:]
	// Skip the info string (```json).
	nl := strings.IndexByte(body, '\n')
	if nl < 0 {
		return ""
	}
	body = body[nl+1:]
	if end := strings.Index(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

func braceSpan(text string) string {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return ""
	}
	return text[start : end+1]
}

// checkShape validates doc against schema. An empty schema accepts anything.
func checkShape(schema, doc json.RawMessage) error {
	if len(schema) == 0 {
		return nil
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("failed to decode reply: %w", err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("reply does not match schema: %w", err)
	}
	return nil
}

// schemaCache holds compiled schemas keyed by their text. Stage schemas are
// package-level values, so the cache stays tiny.
var schemaCache sync.Map

func compileSchema(schema json.RawMessage) (*jsonschema.Schema, error) {
	key := string(schema)
	if s, ok := schemaCache.Load(key); ok {
		return s.(*jsonschema.Schema), nil
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("output.json", bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("failed to load output schema: %w", err)
	}
	compiled, err := c.Compile("output.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile output schema: %w", err)
	}
	schemaCache.Store(key, compiled)
	return compiled, nil
}
