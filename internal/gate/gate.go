// Package gate implements the Compression Gate: bounded concurrency for
// optimization work plus a bounded queue, with immediate backpressure
// instead of unbounded blocking once the queue is full (spec.md §5).
package gate

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/semaphore"

	"github.com/hackclub/imgopt/internal/errs"
)

// Gate admits at most `slots` concurrent holders; up to `queueCapacity`
// additional callers may wait for a slot, but any caller beyond that is
// rejected immediately rather than queued.
type Gate struct {
	sem           *semaphore.Weighted
	queueCapacity int64
	queued        int64 // atomic

	mu        sync.Mutex
	inFlight  int

	inFlightGauge prometheus.Gauge
	queuedGauge   prometheus.Gauge
	rejectedCtr   prometheus.Counter
}

// New builds a Gate with the given concurrency slots and queue capacity.
func New(slots, queueCapacity int) *Gate {
	if slots < 1 {
		slots = 1
	}
	if queueCapacity < 0 {
		queueCapacity = 0
	}
	return &Gate{
		sem:           semaphore.NewWeighted(int64(slots)),
		queueCapacity: int64(queueCapacity),
		inFlightGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "imgopt_gate_in_flight",
			Help: "Number of optimize requests currently holding a gate slot.",
		}),
		queuedGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "imgopt_gate_queued",
			Help: "Number of requests waiting for a gate slot.",
		}),
		rejectedCtr: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "imgopt_gate_rejected_total",
			Help: "Number of requests rejected with backpressure because the queue was full.",
		}),
	}
}

// Collectors returns the gate's prometheus collectors for registration.
func (g *Gate) Collectors() []prometheus.Collector {
	return []prometheus.Collector{g.inFlightGauge, g.queuedGauge, g.rejectedCtr}
}

// Acquire blocks until a slot is free, the queue is full (returns
// BackpressureError immediately), or ctx is done.
func (g *Gate) Acquire(ctx context.Context) error {
	if g.sem.TryAcquire(1) {
		g.onAcquired()
		return nil
	}

	if atomic.AddInt64(&g.queued, 1) > g.queueCapacity {
		atomic.AddInt64(&g.queued, -1)
		g.rejectedCtr.Inc()
		return &errs.BackpressureError{RetryAfterSeconds: 5}
	}
	g.queuedGauge.Inc()
	defer func() {
		atomic.AddInt64(&g.queued, -1)
		g.queuedGauge.Dec()
	}()

	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	g.onAcquired()
	return nil
}

func (g *Gate) onAcquired() {
	g.mu.Lock()
	g.inFlight++
	g.mu.Unlock()
	g.inFlightGauge.Inc()
}

// Release gives back a slot acquired via Acquire.
func (g *Gate) Release() {
	g.mu.Lock()
	g.inFlight--
	g.mu.Unlock()
	g.inFlightGauge.Dec()
	g.sem.Release(1)
}

// InFlight returns the current holder count, for tests and health checks.
func (g *Gate) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight
}
