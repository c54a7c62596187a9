package svcctx

import (
	"context"
	"log/slog"
	"testing"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/checkpoint"
)

func TestServicesFrom(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		ctx := context.Background()
		if ServicesFrom(ctx) != nil || DBFrom(ctx) != nil || CheckpointsFrom(ctx) != nil || LLMCallStoreFrom(ctx) != nil {
			t.Error("expected nil services")
		}
		if LoggerFrom(ctx) != slog.Default() {
			t.Error("expected default logger")
		}
	})

	t.Run("attached services", func(t *testing.T) {
		cps := checkpoint.NewStore(t.TempDir())
		logger := slog.New(slog.DiscardHandler)
		ctx := WithServices(context.Background(), &Services{Checkpoints: cps, Logger: logger})

		if CheckpointsFrom(ctx) != cps {
			t.Error("checkpoint store not returned")
		}
		if LoggerFrom(ctx) != logger {
			t.Error("logger not returned")
		}
	})
}
