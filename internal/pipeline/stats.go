package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// maxReportedErrors bounds the error list in the text report.
const maxReportedErrors = 10

// ItemError is one failed beach.
type ItemError struct {
	BeachID int64  `json:"beach_id"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// RunStats summarizes one Run.
type RunStats struct {
	RunID       string        `json:"run_id"`
	Stage       string        `json:"stage"`
	Total       int           `json:"total"`
	Processed   int           `json:"processed"`
	Succeeded   int           `json:"succeeded"`
	Failed      int           `json:"failed"`
	Warnings    int           `json:"warnings"`
	Errors      []ItemError   `json:"errors,omitempty"`
	DryRun      bool          `json:"dry_run,omitempty"`
	ValidOnly   bool          `json:"validate_only,omitempty"`
	Interrupted bool          `json:"interrupted,omitempty"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
}

func (s *RunStats) fail(item ItemError) {
	s.Failed++
	s.Errors = append(s.Errors, item)
}

// SuccessRate is the percentage of processed beaches that succeeded.
func (s *RunStats) SuccessRate() float64 {
	if s.Processed == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Processed) * 100
}

// Report renders the human-readable run summary.
func (s *RunStats) Report() string {
	var b strings.Builder

	mode := ""
	switch {
	case s.ValidOnly:
		mode = " (validate only)"
	case s.DryRun:
		mode = " (dry run)"
	}
	fmt.Fprintf(&b, "=== %s run %s%s ===\n", s.Stage, s.RunID, mode)
	if s.Interrupted {
		b.WriteString("Run was interrupted; progress is saved in the checkpoint.\n")
	}
	fmt.Fprintf(&b, "Total:        %s\n", humanize.Comma(int64(s.Total)))
	fmt.Fprintf(&b, "Processed:    %s\n", humanize.Comma(int64(s.Processed)))
	fmt.Fprintf(&b, "Succeeded:    %s\n", humanize.Comma(int64(s.Succeeded)))
	fmt.Fprintf(&b, "Failed:       %s\n", humanize.Comma(int64(s.Failed)))
	fmt.Fprintf(&b, "Warnings:     %s\n", humanize.Comma(int64(s.Warnings)))
	fmt.Fprintf(&b, "Success rate: %.1f%%\n", s.SuccessRate())
	fmt.Fprintf(&b, "Duration:     %s\n", s.Duration.Round(time.Millisecond))

	if len(s.Errors) > 0 {
		b.WriteString("\nErrors:\n")
		for i, e := range s.Errors {
			if i == maxReportedErrors {
				fmt.Fprintf(&b, "  ... and %d more (see log)\n", len(s.Errors)-maxReportedErrors)
				break
			}
			fmt.Fprintf(&b, "  - #%d %s [%s]: %s\n", e.BeachID, e.Name, e.Kind, e.Message)
		}
	}
	return b.String()
}
