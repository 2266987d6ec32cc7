package sync

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGate(t *testing.T) {
	g := NewGate(4)
	assert.Equal(t, 4, g.Capacity())
	assert.Equal(t, 0, g.InUse())
	assert.Equal(t, 0, g.PeakUsage())

	assert.PanicsWithValue(t, "invalid capacity: 0", func() { NewGate(0) })
	assert.Panics(t, func() { NewGate(-3) })
}

func TestGatePeakUsage(t *testing.T) {
	g := NewGate(3)
	g.Acquire()
	g.Acquire()
	assert.Equal(t, 2, g.InUse())
	g.Release()
	g.Acquire()
	g.Release()
	g.Release()

	assert.Equal(t, 0, g.InUse())
	assert.Equal(t, 2, g.PeakUsage())

	g.Reset()
	assert.Equal(t, 0, g.PeakUsage())
	g.Acquire()
	g.Release()
	assert.Equal(t, 1, g.PeakUsage())
}

func TestGateBlocksWhenExhausted(t *testing.T) {
	g := NewGate(1)
	g.Acquire()

	acquired := make(chan struct{})
	go func() {
		g.Acquire()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("Acquire returned while no token was available")
	case <-time.After(20 * time.Millisecond):
	}

	g.Release()
	select {
	case <-acquired:
	case <-time.After(5 * time.Second):
		t.Fatal("Release did not wake up the waiting Acquire")
	}
	g.Release()
	assert.Equal(t, 1, g.PeakUsage())
}

func TestGateNeverExceedsCapacity(t *testing.T) {
	const capacity = 4
	g := NewGate(capacity)

	var mu sync.Mutex
	active, maxActive := 0, 0
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				g.Acquire()
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()
				runtime.Gosched()
				mu.Lock()
				active--
				mu.Unlock()
				g.Release()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 0, g.InUse())
	assert.LessOrEqual(t, maxActive, capacity)
	assert.LessOrEqual(t, g.PeakUsage(), capacity)
	assert.GreaterOrEqual(t, g.PeakUsage(), maxActive)
}

func TestGateReleaseWithoutAcquirePanics(t *testing.T) {
	g := NewGate(2)
	assert.Panics(t, func() { g.Release() })
}
