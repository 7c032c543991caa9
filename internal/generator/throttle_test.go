package generator

import (
	"context"
	"testing"
	"time"
)

func TestThrottle_SpacesCalls(t *testing.T) {
	throttle := NewThrottle(30 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := throttle.Wait(ctx); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("three calls completed in %v, want at least 60ms of spacing", elapsed)
	}
}

func TestThrottle_FirstCallImmediate(t *testing.T) {
	throttle := NewThrottle(time.Hour)

	start := time.Now()
	if err := throttle.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("first call blocked for %v", elapsed)
	}
}

func TestThrottle_ContextCancelled(t *testing.T) {
	throttle := NewThrottle(time.Hour)
	if err := throttle.Wait(context.Background()); err != nil {
		t.Fatalf("claiming first slot: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := throttle.Wait(ctx); err != context.Canceled {
		t.Errorf("Wait with cancelled context = %v, want context.Canceled", err)
	}
}

func TestThrottle_ZeroInterval(t *testing.T) {
	throttle := NewThrottle(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := throttle.Wait(ctx); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("100 unthrottled calls took %v", elapsed)
	}
}
