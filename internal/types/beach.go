// Package types provides shared types used across multiple packages.
// This package has no dependencies on other beachfinder packages to avoid import cycles.
package types

import "strings"

// WorkItem is a beach record read from the store. The pipeline never mutates it.
type WorkItem struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Municipality string  `json:"municipality"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Description  string  `json:"description,omitempty"`

	// Known classification, populated for stages that run after classify.
	Tags      []string `json:"tags,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}

// Feature is a short titled highlight of a beach.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Tip is a categorized piece of visitor advice.
type Tip struct {
	Category string `json:"category"`
	Tip      string `json:"tip"`
}

// FieldData holds the scalar narrative fields stored on the beach row.
type FieldData struct {
	BestTime       string `json:"best_time"`
	ParkingDetails string `json:"parking_details"`
	SafetyInfo     string `json:"safety_info"`
	AccessLabel    string `json:"access_label"`
}

// ClassificationResult is the decoded output of the classify stage.
type ClassificationResult struct {
	Tags      []string   `json:"tags"`
	Amenities []string   `json:"amenities"`
	Features  []Feature  `json:"features"`
	Tips      []Tip      `json:"tips"`
	FieldData *FieldData `json:"field_data"`
}

// Section is one long-form content block.
type Section struct {
	SectionType string `json:"section_type"`
	Heading     string `json:"heading"`
	Content     string `json:"content"`
}

// SectionsResult is the decoded output of the sections stage.
type SectionsResult struct {
	Sections []Section `json:"sections"`
}

// Get returns the first section of the given type.
func (r *SectionsResult) Get(sectionType string) (Section, bool) {
	for _, s := range r.Sections {
		if s.SectionType == sectionType {
			return s, true
		}
	}
	return Section{}, false
}

// ValidationReport is the outcome of validating one generated result.
// Errors block persistence; warnings are logged only.
type ValidationReport struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Score    int      `json:"score"`
}

// AddError records a blocking problem and marks the report invalid.
func (r *ValidationReport) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Valid = false
}

// AddWarning records a non-blocking problem.
func (r *ValidationReport) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// ErrorSummary joins all errors into a single message.
func (r *ValidationReport) ErrorSummary() string {
	return strings.Join(r.Errors, "; ")
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
