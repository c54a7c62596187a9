// Package prompts provides prompt management for the enrichment stages.
//
// Prompt text lives in embedded .tmpl files next to each stage builder
// (classify, sections). Builders register their templates here so the CLI
// can list them and so every recorded LLM call can carry the hash of the
// exact template version that produced its prompt.
package prompts

// EmbeddedPrompt represents a prompt loaded from an embedded .tmpl file.
type EmbeddedPrompt struct {
	Key         string   // Hierarchical key: stages.classify.user
	Text        string   // The prompt text (Go template)
	Description string   // Human-readable description
	Variables   []string // Extracted template variables
	Hash        string   // SHA256 hash of the text for change detection
}
