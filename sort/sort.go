/*
Package sort provides a parallel merge sort for float64 slices whose
fan-out is bounded by a sync.Gate, together with the sequential
primitives it is built from and a parallel verifier.
*/
package sort

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/exascience/gatesort/speculative"
)

// Default grain sizes. Below these sizes, the corresponding operation runs
// sequentially instead of spawning further parallel work.
const (
	DefaultSelectionGrainSize = 10
	DefaultSortGrainSize      = 1000000
	DefaultMergeGrainSize     = 500000
)

const verifyGrainSize = 0x500

// ErrNotSorted is returned by Verify when a slice is not in increasing
// order.
var ErrNotSorted = errors.New("sorting is incorrect")

/*
Float64sAreSorted determines in parallel whether a slice of float64s
is already sorted in increasing order. It attempts to terminate early
when the return value is false. A slice that contains a NaN is never
considered sorted.
*/
func Float64sAreSorted(a []float64) bool {
	size := len(a)
	if size < verifyGrainSize {
		return sequentialIsSorted(a, 1, size)
	}
	var done atomic.Bool
	defer done.Store(true)
	return speculative.RangeAnd(1, size, 0, func(low, high int) bool {
		for i := low; i < high; i++ {
			if ((i % 1024) == 0) && done.Load() {
				return false
			}
			if !(a[i-1] <= a[i]) {
				return false
			}
		}
		return true
	})
}

func sequentialIsSorted(a []float64, low, high int) bool {
	for i := low; i < high; i++ {
		if !(a[i-1] <= a[i]) {
			return false
		}
	}
	return true
}

// Verify returns nil if a is sorted in increasing order. Otherwise it
// returns an error wrapping ErrNotSorted that reports the first pair of
// elements that is out of order or involves a NaN.
func Verify(a []float64) error {
	if Float64sAreSorted(a) {
		return nil
	}
	for i := 1; i < len(a); i++ {
		if !(a[i-1] <= a[i]) {
			return fmt.Errorf("%w: a[%v] = %v, a[%v] = %v", ErrNotSorted, i-1, a[i-1], i, a[i])
		}
	}
	return nil
}
