// Package sequential provides sequential implementations of the
// functions provided by the parallel package. This is useful for
// testing and debugging, and for runs that must stay on a single
// goroutine, such as a sequential baseline of a benchmark.
package sequential

import (
	"github.com/exascience/gatesort/internal"
)

// Do receives zero or more thunks and executes them sequentially,
// returning the left-most error value that is different from nil.
func Do(thunks ...func() error) (err error) {
	for _, thunk := range thunks {
		nerr := thunk()
		if err == nil {
			err = nerr
		}
	}
	return
}

// Range receives a range, a batch count n, and a range function f,
// divides the range into batches, and invokes the range function for
// each of these batches sequentially, covering the half-open interval
// from low to high, including low but excluding high.
//
// The batches are the same as those of parallel.Range for the same
// arguments, so functions that depend on batch boundaries produce the
// same results with both.
//
// Range returns the left-most error value that is different from
// nil.
//
// Range panics if high < low, or if n < 0.
func Range(
	low, high, n int,
	f func(low, high int) error,
) error {
	var recur func(int, int, int) error
	recur = func(low, high, n int) error {
		mid, half, ok := internal.SplitBatches(low, high, n)
		if !ok {
			return f(low, high)
		}
		return Do(
			func() error { return recur(low, mid, half) },
			func() error { return recur(mid, high, n-half) },
		)
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}
