package providers

import (
	"context"
	"testing"
	"time"
)

func TestPacer(t *testing.T) {
	t.Run("first call does not wait", func(t *testing.T) {
		p := NewPacer(time.Hour)
		start := time.Now()
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
		if time.Since(start) > 100*time.Millisecond {
			t.Error("first Wait() should not block")
		}
	})

	t.Run("waits after done", func(t *testing.T) {
		p := NewPacer(30 * time.Millisecond)
		p.Done()
		start := time.Now()
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
		if time.Since(start) < 25*time.Millisecond {
			t.Error("Wait() returned before the minimum delay")
		}
	})

	t.Run("context cancellation", func(t *testing.T) {
		p := NewPacer(time.Hour)
		p.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		if err := p.Wait(ctx); err == nil {
			t.Error("expected context error")
		}
	})

	t.Run("negative delay", func(t *testing.T) {
		p := NewPacer(-time.Second)
		p.Done()
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
		if p.Status().MinDelay != 0 {
			t.Error("negative delay should clamp to zero")
		}
	})
}
