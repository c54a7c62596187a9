// Package vocab supplies the controlled vocabularies that generated beach
// content must conform to. Defaults are embedded; a YAML file may replace them.
package vocab

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed vocab.yaml
var defaultYAML []byte

// ErrEmptyVocabulary is returned when a loaded vocabulary is missing a required list.
var ErrEmptyVocabulary = errors.New("vocabulary list is empty")

// Vocabulary holds the closed value sets used by prompts and validation.
type Vocabulary struct {
	Tags              []string      `yaml:"tags"`
	Amenities         []string      `yaml:"amenities"`
	TipCategories     []string      `yaml:"tip_categories"`
	AccessLabels      []string      `yaml:"access_labels"`
	ExclusiveTagPairs [][2]string   `yaml:"exclusive_tag_pairs"`
	GenericPhrases    []string      `yaml:"generic_phrases"`
	Sections          []SectionSpec `yaml:"sections"`
}

// SectionSpec describes one required long-form section and its word band.
type SectionSpec struct {
	Type     string `yaml:"type"`
	Heading  string `yaml:"heading"`
	MinWords int    `yaml:"min_words"`
	MaxWords int    `yaml:"max_words"`
	Guidance string `yaml:"guidance"`
}

// Default returns the embedded vocabulary.
func Default() *Vocabulary {
	v, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded vocabulary is invalid: %v", err))
	}
	return v
}

// Load reads a vocabulary from path. An empty path returns the embedded default.
func Load(path string) (*Vocabulary, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and checks a YAML vocabulary document.
func Parse(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary: %w", err)
	}
	if err := v.check(); err != nil {
		return nil, err
	}
	return &v, nil
}

func (v *Vocabulary) check() error {
	lists := map[string][]string{
		"tags":            v.Tags,
		"amenities":       v.Amenities,
		"tip_categories":  v.TipCategories,
		"access_labels":   v.AccessLabels,
		"generic_phrases": v.GenericPhrases,
	}
	for name, list := range lists {
		if len(list) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyVocabulary, name)
		}
	}
	if len(v.Sections) == 0 {
		return fmt.Errorf("%w: sections", ErrEmptyVocabulary)
	}
	for _, sec := range v.Sections {
		if sec.Type == "" || sec.MinWords <= 0 || sec.MaxWords < sec.MinWords {
			return fmt.Errorf("invalid section spec %q: word band %d-%d", sec.Type, sec.MinWords, sec.MaxWords)
		}
	}
	for _, pair := range v.ExclusiveTagPairs {
		for _, tag := range pair {
			if !v.HasTag(tag) {
				return fmt.Errorf("exclusive pair references unknown tag %q", tag)
			}
		}
	}
	return nil
}

// HasTag reports whether tag is in the tag vocabulary.
func (v *Vocabulary) HasTag(tag string) bool {
	return slices.Contains(v.Tags, tag)
}

// HasAmenity reports whether amenity is in the amenity vocabulary.
func (v *Vocabulary) HasAmenity(amenity string) bool {
	return slices.Contains(v.Amenities, amenity)
}

// HasTipCategory reports whether category is a known tip category.
func (v *Vocabulary) HasTipCategory(category string) bool {
	return slices.Contains(v.TipCategories, category)
}

// HasAccessLabel reports whether label is one of the fixed access labels.
func (v *Vocabulary) HasAccessLabel(label string) bool {
	return slices.Contains(v.AccessLabels, label)
}

// Section returns the spec for a section type.
func (v *Vocabulary) Section(sectionType string) (SectionSpec, bool) {
	for _, sec := range v.Sections {
		if sec.Type == sectionType {
			return sec, true
		}
	}
	return SectionSpec{}, false
}

// GenericMatches returns the distinct generic phrases found in text, case-insensitively,
// in vocabulary order.
func (v *Vocabulary) GenericMatches(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, phrase := range v.GenericPhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			found = append(found, phrase)
		}
	}
	return found
}
