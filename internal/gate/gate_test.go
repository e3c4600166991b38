package gate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hackclub/imgopt/internal/errs"
)

func TestGate_LimitsConcurrency(t *testing.T) {
	g := New(2, 10)
	ctx := context.Background()

	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("acquire 1: %v", err)
	}
	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("acquire 2: %v", err)
	}
	if g.InFlight() != 2 {
		t.Fatalf("expected 2 in flight, got %d", g.InFlight())
	}

	acquired := make(chan struct{})
	go func() {
		g.Acquire(ctx)
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("third acquire should have blocked while only 2 slots exist")
	case <-time.After(50 * time.Millisecond):
	}

	g.Release()
	<-acquired
	g.Release()
	g.Release()
}

func TestGate_BackpressureWhenQueueFull(t *testing.T) {
	g := New(1, 0)
	ctx := context.Background()

	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer g.Release()

	err := g.Acquire(ctx)
	if err == nil {
		t.Fatal("expected backpressure error")
	}
	if !errors.Is(err, errs.ErrBackpressure) {
		t.Fatalf("expected ErrBackpressure, got %v", err)
	}
}

func TestGate_ConcurrentAcquireReleaseNeverExceedsSlots(t *testing.T) {
	const slots = 3
	g := New(slots, 100)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	maxSeen := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := g.Acquire(ctx); err != nil {
				return
			}
			mu.Lock()
			if g.InFlight() > maxSeen {
				maxSeen = g.InFlight()
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			g.Release()
		}()
	}
	wg.Wait()
	if maxSeen > slots {
		t.Fatalf("observed %d concurrent holders, want <= %d", maxSeen, slots)
	}
}
