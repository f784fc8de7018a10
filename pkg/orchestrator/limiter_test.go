package orchestrator

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestLimiterSerializesSameSession(t *testing.T) {
	l := NewLimiter(10)
	ctx := context.Background()

	var mu sync.Mutex
	active := 0
	maxActive := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(ctx, "same-session")
			if err != nil {
				t.Error(err)
				return
			}
			defer release()

			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Errorf("same-session concurrency = %d, want 1", maxActive)
	}
	if l.TrackedSessions() != 0 {
		t.Errorf("lock map not reclaimed: %d entries", l.TrackedSessions())
	}
}

func TestLimiterAllowsDistinctSessions(t *testing.T) {
	l := NewLimiter(10)
	ctx := context.Background()

	r1, err := l.Acquire(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan struct{})
	go func() {
		r2, err := l.Acquire(ctx, "b")
		if err == nil {
			r2()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("distinct sessions blocked each other")
	}
	r1()
}

func TestLimiterGlobalCapacity(t *testing.T) {
	l := NewLimiter(1)

	r1, err := l.Acquire(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := l.Acquire(ctx, "b"); err == nil {
		t.Error("expected second acquire to block until deadline at capacity 1")
	}
	r1()

	// Slot freed; the next acquire proceeds.
	r2, err := l.Acquire(context.Background(), "b")
	if err != nil {
		t.Fatal(err)
	}
	r2()
}
