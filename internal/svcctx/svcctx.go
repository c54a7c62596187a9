// Package svcctx carries the services a command needs through context.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/checkpoint"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/config"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/home"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/llmcall"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/prompts"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/providers"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/store"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/vocab"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Config       *config.Manager
	Home         *home.Dir
	DB           *store.DB
	Providers    *providers.Registry
	Prompts      *prompts.Registry
	Vocab        *vocab.Vocabulary
	Checkpoints  *checkpoint.Store
	LLMCallStore *llmcall.Store
	Logger       *slog.Logger
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// DBFrom extracts the database from context.
func DBFrom(ctx context.Context) *store.DB {
	if s := ServicesFrom(ctx); s != nil {
		return s.DB
	}
	return nil
}

// LoggerFrom extracts the logger from context, falling back to slog.Default.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil && s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// CheckpointsFrom extracts the checkpoint store from context.
func CheckpointsFrom(ctx context.Context) *checkpoint.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Checkpoints
	}
	return nil
}

// LLMCallStoreFrom extracts the LLM call store from context.
func LLMCallStoreFrom(ctx context.Context) *llmcall.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.LLMCallStore
	}
	return nil
}
