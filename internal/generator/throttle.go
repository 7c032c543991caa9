package generator

import (
	"context"
	"sync"
	"time"
)

// Throttle enforces a minimum gap between outbound generation calls. All
// API traffic shares one instance so a burst of plan generation cannot
// stampede the provider.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Wait claims the next send slot and blocks until it opens. Concurrent
// callers queue up at interval spacing. Returns early if the context is
// cancelled; the claimed slot is not released.
func (t *Throttle) Wait(ctx context.Context) error {
	t.mu.Lock()
	now := time.Now()
	next := t.last.Add(t.interval)
	if next.Before(now) {
		next = now
	}
	t.last = next
	t.mu.Unlock()

	wait := time.Until(next)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
