package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/providers"
)

// Error kinds as they appear in logs and reports.
const (
	KindTransport   = "transport"
	KindParse       = "parse"
	KindValidation  = "validation"
	KindPersistence = "persistence"
	KindFatal       = "fatal"
	KindUnknown     = "unknown"
)

// TransportError is a failed provider call for one beach.
type TransportError struct {
	BeachID int64
	Status  int
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("beach %d: %v", e.BeachID, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError means the model output was not the JSON we asked for.
type ParseError struct {
	BeachID int64
	Excerpt string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("beach %d: %v", e.BeachID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError carries every rule the output broke.
type ValidationError struct {
	BeachID  int64
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("beach %d: validation failed: %s", e.BeachID, strings.Join(e.Messages, "; "))
}

// PersistenceError is a failed write. The transaction was rolled back.
type PersistenceError struct {
	BeachID int64
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("beach %d: persist failed: %v", e.BeachID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// FatalError aborts the run. It is the only error Run returns.
type FatalError struct {
	Message string
	Err     error
}

func (e *FatalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fatal: %s: %v", e.Message, e.Err)
	}
	return "fatal: " + e.Message
}

func (e *FatalError) Unwrap() error { return e.Err }

// ErrorKind names the taxonomy bucket of err.
func ErrorKind(err error) string {
	var (
		transport   *TransportError
		parse       *ParseError
		validation  *ValidationError
		persistence *PersistenceError
		fatal       *FatalError
	)
	switch {
	case errors.As(err, &fatal):
		return KindFatal
	case errors.As(err, &validation):
		return KindValidation
	case errors.As(err, &persistence):
		return KindPersistence
	case errors.As(err, &parse):
		return KindParse
	case errors.As(err, &transport):
		return KindTransport
	default:
		return KindUnknown
	}
}

// classifyGeneration converts a generator failure into the pipeline taxonomy.
func classifyGeneration(beachID int64, err error) error {
	var gen *providers.GenerationError
	if errors.As(err, &gen) && gen.Kind == providers.KindParse {
		return &ParseError{BeachID: beachID, Excerpt: gen.Excerpt, Err: err}
	}
	te := &TransportError{BeachID: beachID, Err: err}
	if gen != nil {
		te.Status = gen.Status
	}
	return te
}
