// Package classify builds the classification prompt for bare beach records.
package classify

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/prompts"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/types"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/vocab"
)

//go:embed prompt.tmpl
var promptTmpl string

var userTemplate = template.Must(template.New("classify").Funcs(prompts.FuncMap()).Parse(promptTmpl))

// PromptKey identifies the classification prompt in the registry.
const PromptKey = "stages.classify.user"

type promptData struct {
	Item   types.WorkItem
	Region prompts.Region
	Vocab  *vocab.Vocabulary
}

// Builder renders classification prompts. It is a pure function of the
// work item and the static vocabulary and region tables.
type Builder struct {
	vocab *vocab.Vocabulary
}

// NewBuilder creates a prompt builder over the given vocabulary.
func NewBuilder(v *vocab.Vocabulary) *Builder {
	if v == nil {
		v = vocab.Default()
	}
	return &Builder{vocab: v}
}

// Build renders the prompt for one beach.
func (b *Builder) Build(item types.WorkItem) string {
	var buf bytes.Buffer
	data := promptData{
		Item:   item,
		Region: prompts.RegionFor(item.Municipality),
		Vocab:  b.vocab,
	}
	if err := userTemplate.Execute(&buf, data); err != nil {
		// Fallback to raw template on error
		return promptTmpl
	}
	return buf.String()
}

// RegisterPrompts registers the classification prompt with the registry.
func RegisterPrompts(r *prompts.Registry) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         PromptKey,
		Text:        promptTmpl,
		Description: "Beach classification prompt - tags, amenities, features, tips and field data",
	})
}
