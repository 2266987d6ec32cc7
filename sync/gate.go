/*
Package sync provides synchronization primitives similar to the sync
package of Go's standard library, however here with a focus on
bounding parallel work rather than protecting shared state. So far,
this package only provides Gate, a counting admission control
primitive that limits how many recursive tasks are active at the same
time and records the peak it observed.
*/
package sync

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

/*
A Gate hands out a fixed number of execution tokens. A task that holds
a token counts as active. Unlike a worker pool limiter, a Gate is
consulted by every recursive call, including the ones that end up doing
sequential work, so it bounds the total number of outstanding recursive
calls rather than the number of goroutines.

A task that spawns children must release its token after starting the
children and before waiting for them. Holding the token across the join
exhausts the gate under deep recursion and deadlocks.

A Gate must be created with NewGate. It is safe for concurrent use by
arbitrarily many goroutines.
*/
type Gate struct {
	capacity int64
	sem      *semaphore.Weighted
	inUse    atomic.Int64
	peak     atomic.Int64
}

// NewGate returns a gate with the given number of tokens, all of them
// available. NewGate panics if capacity < 1, since a gate without tokens
// blocks every caller forever.
func NewGate(capacity int) *Gate {
	if capacity < 1 {
		panic(fmt.Sprintf("invalid capacity: %v", capacity))
	}
	return &Gate{
		capacity: int64(capacity),
		sem:      semaphore.NewWeighted(int64(capacity)),
	}
}

// Acquire blocks until a token is available and takes it. It never fails
// and has no timeout.
func (g *Gate) Acquire() {
	// Acquire only fails when the context is done.
	_ = g.sem.Acquire(context.Background(), 1)
	n := g.inUse.Add(1)
	for {
		peak := g.peak.Load()
		if n <= peak || g.peak.CompareAndSwap(peak, n) {
			return
		}
	}
}

// Release returns a token and wakes up a waiting Acquire, if any. Release
// panics if more tokens are released than were acquired.
func (g *Gate) Release() {
	g.inUse.Add(-1)
	g.sem.Release(1)
}

// PeakUsage returns the largest number of tokens that were held at the
// same time since the gate was created or last reset. The value is only
// final once all tasks using the gate have terminated.
func (g *Gate) PeakUsage() int {
	return int(g.peak.Load())
}

// Capacity returns the number of tokens the gate was created with.
func (g *Gate) Capacity() int {
	return int(g.capacity)
}

// InUse returns the number of tokens currently held.
func (g *Gate) InUse() int {
	return int(g.inUse.Load())
}

// Reset lowers the peak to the number of tokens currently held, so that a
// gate can be reused for another run. Call it only while the gate is idle.
func (g *Gate) Reset() {
	g.peak.Store(g.inUse.Load())
}
