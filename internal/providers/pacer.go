package providers

import (
	"context"
	"sync"
	"time"
)

// Pacer enforces a minimum gap between the end of one provider call and the
// start of the next.
type Pacer struct {
	mu sync.Mutex

	minDelay time.Duration
	lastEnd  time.Time

	// Statistics
	calls       int64
	totalWaited time.Duration
	last429Time time.Time
}

// PacerStatus reports current pacer state.
type PacerStatus struct {
	MinDelay    time.Duration `json:"min_delay"`
	Calls       int64         `json:"calls"`
	TotalWaited time.Duration `json:"total_waited"`
	Last429Time time.Time     `json:"last_429_time,omitempty"`
}

// NewPacer creates a pacer. A zero delay never waits.
func NewPacer(minDelay time.Duration) *Pacer {
	if minDelay < 0 {
		minDelay = 0
	}
	return &Pacer{minDelay: minDelay}
}

// Wait blocks until minDelay has elapsed since the last call ended,
// or the context is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	var wait time.Duration
	if !p.lastEnd.IsZero() {
		wait = p.minDelay - time.Since(p.lastEnd)
	}
	p.mu.Unlock()

	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		p.mu.Lock()
		p.totalWaited += wait
		p.mu.Unlock()
		return nil
	}
}

// Done marks the end of a call.
func (p *Pacer) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastEnd = time.Now()
	p.calls++
}

// Record429 should be called when a 429 response is received.
func (p *Pacer) Record429() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last429Time = time.Now()
}

// Status returns current pacer status.
func (p *Pacer) Status() PacerStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PacerStatus{
		MinDelay:    p.minDelay,
		Calls:       p.calls,
		TotalWaited: p.totalWaited,
		Last429Time: p.last429Time,
	}
}
