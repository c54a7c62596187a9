// Package sections builds the long-form section generation prompt.
package sections

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

var userTemplate = template.Must(template.New("sections").Funcs(prompts.FuncMap()).Parse(promptTmpl))

// PromptKey identifies the section generation prompt in the registry.
const PromptKey = "stages.sections.user"

type promptData struct {
	Item           types.WorkItem
	Region         prompts.Region
	Sections       []vocab.SectionSpec
	GenericPhrases []string
}

// Builder renders section generation prompts.
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
		Item:           item,
		Region:         prompts.RegionFor(item.Municipality),
		Sections:       b.vocab.Sections,
		GenericPhrases: b.vocab.GenericPhrases,
	}
	if err := userTemplate.Execute(&buf, data); err != nil {
		return promptTmpl
	}
	return buf.String()
}

// RegisterPrompts registers the sections prompt with the registry.
func RegisterPrompts(r *prompts.Registry) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         PromptKey,
		Text:        promptTmpl,
		Description: "Long-form beach guide sections with per-section word bands",
	})
}
