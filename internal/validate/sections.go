package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/types"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/vocab"
)

const (
	// MinReadability is the Flesch reading ease below which a section is flagged.
	MinReadability = 30.0

	// repetitiveOpeners is how many sentences may share a first word before
	// the section is flagged.
	repetitiveOpeners = 3
)

// SectionValidator checks long-form content sections. The only hard error is
// a missing required section; everything else lowers the score.
type SectionValidator struct {
	vocab *vocab.Vocabulary
}

// NewSectionValidator creates a section validator over the given vocabulary.
func NewSectionValidator(v *vocab.Vocabulary) *SectionValidator {
	if v == nil {
		v = vocab.Default()
	}
	return &SectionValidator{vocab: v}
}

// Validate checks r. When memo is non-nil, sentences are compared against
// those recorded for earlier beaches and then added to it.
func (sv *SectionValidator) Validate(r *types.SectionsResult, memo *SentenceMemo) types.ValidationReport {
	rep := types.ValidationReport{Valid: true}
	if r == nil {
		r = &types.SectionsResult{}
	}

	for _, spec := range sv.vocab.Sections {
		if _, ok := r.Get(spec.Type); !ok {
			rep.AddError(fmt.Sprintf("missing section: %s", spec.Type))
		}
	}

	for _, sec := range r.Sections {
		sv.checkSection(&rep, sec, memo)
	}

	rep.Score = score(rep)
	return rep
}

func (sv *SectionValidator) checkSection(rep *types.ValidationReport, sec types.Section, memo *SentenceMemo) {
	name := sec.SectionType

	spec, known := sv.vocab.Section(name)
	if !known {
		rep.AddWarning(fmt.Sprintf("unknown section type %q", name))
	} else {
		words := types.WordCount(sec.Content)
		switch {
		case words < spec.MinWords:
			rep.AddWarning(fmt.Sprintf("%s: %d words, below the %d-%d range", name, words, spec.MinWords, spec.MaxWords))
		case words > spec.MaxWords:
			rep.AddWarning(overrun(name, words, spec.MaxWords, "words"))
		}
	}

	if found := sv.vocab.GenericMatches(sec.Content); len(found) > 0 {
		rep.AddWarning(fmt.Sprintf("%s: generic phrases: %s", name, strings.Join(found, ", ")))
	}

	sentences := splitSentences(sec.Content)

	if memo != nil {
		dupes := 0
		for _, s := range sentences {
			if len(strings.Fields(s)) >= minMemoWords && memo.Contains(name, s) {
				dupes++
			}
		}
		if dupes > 0 {
			rep.AddWarning(fmt.Sprintf("%s: %d sentence(s) repeat content generated for another beach", name, dupes))
		}
		for _, s := range sentences {
			if len(strings.Fields(s)) >= minMemoWords {
				memo.Add(name, s)
			}
		}
	}

	openers := make(map[string]int)
	for _, s := range sentences {
		if w := firstWord(s); w != "" {
			openers[w]++
		}
	}
	var repeated []string
	for w, n := range openers {
		if n >= repetitiveOpeners {
			repeated = append(repeated, w)
		}
	}
	sort.Strings(repeated)
	for _, w := range repeated {
		rep.AddWarning(fmt.Sprintf("%s: %d sentences start with %q", name, openers[w], w))
	}

	if sec.Content != "" {
		if ease := fleschReadingEase(sec.Content); ease < MinReadability {
			rep.AddWarning(fmt.Sprintf("%s: hard to read (Flesch %.0f, min %.0f)", name, ease, MinReadability))
		}
	}
}
