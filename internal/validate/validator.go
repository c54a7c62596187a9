// Package validate checks generated beach content against the controlled
// vocabularies and length rules before anything is persisted.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/types"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/vocab"
)

// Classification bounds.
const (
	MinTags      = 3
	MaxTags      = 6
	MinAmenities = 2
	MaxAmenities = 5

	MinFeatures          = 2
	MaxFeatures          = 4
	MinFeatureTitle      = 5
	MaxFeatureTitle      = 50
	MinFeatureDesc       = 50
	MaxFeatureDesc       = 200
	MinTips              = 3
	MaxTips              = 5
	MinTipLen            = 20
	MaxTipLen            = 150
	MinBestTimeWords     = 30
	MaxBestTimeWords     = 150
	warningPenalty       = 5
	slightOverrunPercent = 25
)

// Validator checks classification results.
type Validator struct {
	vocab *vocab.Vocabulary
}

// New creates a classification validator over the given vocabulary.
func New(v *vocab.Vocabulary) *Validator {
	if v == nil {
		v = vocab.Default()
	}
	return &Validator{vocab: v}
}

// Validate checks every rule and returns a report. Errors make the result
// unusable; warnings are advisory.
func (v *Validator) Validate(r *types.ClassificationResult) types.ValidationReport {
	rep := types.ValidationReport{Valid: true}
	if r == nil {
		rep.AddError("result: missing")
		return rep
	}

	v.checkClosedList(&rep, "tags", r.Tags, MinTags, MaxTags, v.vocab.HasTag)
	v.checkClosedList(&rep, "amenities", r.Amenities, MinAmenities, MaxAmenities, v.vocab.HasAmenity)
	v.checkExclusivePairs(&rep, r.Tags)
	v.checkFeatures(&rep, r.Features)
	v.checkTips(&rep, r.Tips)
	v.checkFieldData(&rep, r.FieldData)
	v.checkGenericPhrases(&rep, r)

	rep.Score = score(rep)
	return rep
}

func (v *Validator) checkClosedList(rep *types.ValidationReport, field string, values []string, lo, hi int, known func(string) bool) {
	if n := len(values); n < lo || n > hi {
		rep.AddError(fmt.Sprintf("%s: expected %d-%d, got %d", field, lo, hi, n))
	}
	seen := make(map[string]bool, len(values))
	for _, val := range values {
		if !known(val) {
			rep.AddError(fmt.Sprintf("%s: %q is not in the vocabulary", field, val))
		}
		if seen[val] {
			rep.AddError(fmt.Sprintf("%s: duplicate %q", field, val))
		}
		seen[val] = true
	}
}

func (v *Validator) checkExclusivePairs(rep *types.ValidationReport, tags []string) {
	has := make(map[string]bool, len(tags))
	for _, t := range tags {
		has[t] = true
	}
	for _, pair := range v.vocab.ExclusiveTagPairs {
		if has[pair[0]] && has[pair[1]] {
			rep.AddWarning(fmt.Sprintf("tags: %q and %q contradict each other", pair[0], pair[1]))
		}
	}
}

func (v *Validator) checkFeatures(rep *types.ValidationReport, features []types.Feature) {
	switch n := len(features); {
	case n == 0:
		rep.AddError("features: none provided")
	case n < MinFeatures:
		rep.AddError(fmt.Sprintf("features: expected at least %d, got %d", MinFeatures, n))
	case n > MaxFeatures:
		rep.AddWarning(fmt.Sprintf("features: expected at most %d, got %d", MaxFeatures, n))
	}

	for i, f := range features {
		field := fmt.Sprintf("features[%d]", i)
		checkLength(rep, field+".title", utf8.RuneCountInString(strings.TrimSpace(f.Title)), MinFeatureTitle, MaxFeatureTitle, "characters")
		checkLength(rep, field+".description", utf8.RuneCountInString(strings.TrimSpace(f.Description)), MinFeatureDesc, MaxFeatureDesc, "characters")
	}
}

func (v *Validator) checkTips(rep *types.ValidationReport, tips []types.Tip) {
	switch n := len(tips); {
	case n == 0:
		rep.AddError("tips: none provided")
	case n < MinTips || n > MaxTips:
		rep.AddWarning(fmt.Sprintf("tips: expected %d-%d, got %d", MinTips, MaxTips, n))
	}

	for i, tip := range tips {
		field := fmt.Sprintf("tips[%d]", i)
		if !v.vocab.HasTipCategory(tip.Category) {
			rep.AddWarning(fmt.Sprintf("%s.category: %q is not a known category", field, tip.Category))
		}
		checkLength(rep, field+".tip", utf8.RuneCountInString(strings.TrimSpace(tip.Tip)), MinTipLen, MaxTipLen, "characters")
	}
}

func (v *Validator) checkFieldData(rep *types.ValidationReport, fd *types.FieldData) {
	if fd == nil {
		rep.AddError("field_data: missing")
		return
	}
	checkLength(rep, "field_data.best_time", types.WordCount(fd.BestTime), MinBestTimeWords, MaxBestTimeWords, "words")
	if strings.TrimSpace(fd.ParkingDetails) == "" {
		rep.AddError("field_data.parking_details: empty")
	}
	if strings.TrimSpace(fd.SafetyInfo) == "" {
		rep.AddError("field_data.safety_info: empty")
	}
	if !v.vocab.HasAccessLabel(fd.AccessLabel) {
		rep.AddError(fmt.Sprintf("field_data.access_label: %q is not one of %s", fd.AccessLabel, strings.Join(v.vocab.AccessLabels, ", ")))
	}
}

// checkGenericPhrases scans the whole serialized result. Two or more distinct
// banned phrases reject it; a single one is tolerated with a warning.
func (v *Validator) checkGenericPhrases(rep *types.ValidationReport, r *types.ClassificationResult) {
	data, err := json.Marshal(r)
	if err != nil {
		rep.AddError(fmt.Sprintf("result: failed to serialize: %v", err))
		return
	}
	found := v.vocab.GenericMatches(string(data))
	switch {
	case len(found) >= 2:
		rep.AddError(fmt.Sprintf("generic phrases: %s", strings.Join(found, ", ")))
	case len(found) == 1:
		rep.AddWarning(fmt.Sprintf("generic phrase: %s", found[0]))
	}
}

// checkLength reports under-length as an error and over-length as a warning.
func checkLength(rep *types.ValidationReport, field string, got, lo, hi int, unit string) {
	switch {
	case got < lo:
		rep.AddError(fmt.Sprintf("%s: too short (%d %s, min %d)", field, got, unit, lo))
	case got > hi:
		rep.AddWarning(overrun(field, got, hi, unit))
	}
}

func overrun(field string, got, max int, unit string) string {
	degree := "slightly"
	if (got-max)*100 > max*slightOverrunPercent {
		degree = "well"
	}
	return fmt.Sprintf("%s: %s over limit (%d %s, max %d)", field, degree, got, unit, max)
}

func score(rep types.ValidationReport) int {
	if !rep.Valid {
		return 0
	}
	s := 100 - warningPenalty*len(rep.Warnings)
	if s < 0 {
		return 0
	}
	return s
}
