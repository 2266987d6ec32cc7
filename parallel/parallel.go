// Package parallel provides fork/join functions for expressing parallel
// algorithms.
//
// Fork is the primitive used by the bounded merge sort: it starts its thunks
// without waiting for them, so that the caller can give up its concurrency
// token before it joins its children.
package parallel

import (
	"sync"

	"github.com/exascience/gatesort"
	"github.com/exascience/gatesort/internal"
)

// Do receives zero or more thunks and executes them in parallel.
//
// Each thunk is invoked in its own goroutine, and Do returns only
// when all thunks have terminated, returning the left-most error
// value that is different from nil.
//
// If one or more thunks panic, the corresponding goroutines recover
// the panics, and Do eventually panics with the left-most
// recovered panic value.
func Do(thunks ...func() error) (err error) {
	switch len(thunks) {
	case 0:
		return nil
	case 1:
		return thunks[0]()
	}
	var err0, err1 error
	var p interface{}
	var wg sync.WaitGroup
	wg.Add(1)
	switch len(thunks) {
	case 2:
		go func() {
			defer func() {
				p = internal.WrapPanic(recover())
				wg.Done()
			}()
			err1 = thunks[1]()
		}()
		err0 = thunks[0]()
	default:
		half := len(thunks) / 2
		go func() {
			defer func() {
				p = internal.WrapPanic(recover())
				wg.Done()
			}()
			err1 = Do(thunks[half:]...)
		}()
		err0 = Do(thunks[:half]...)
	}
	wg.Wait()
	if p != nil {
		panic(p)
	}
	if err0 != nil {
		err = err0
	} else {
		err = err1
	}
	return
}

// Fork receives zero or more thunks and starts each of them in its own
// goroutine. Unlike Do, Fork does not wait for the thunks. It returns a
// join function that blocks until all thunks have terminated.
//
// The join function must be called exactly once. If one or more thunks
// panic, the corresponding goroutines recover the panics, and join
// panics with the left-most recovered panic value.
func Fork(thunks ...gatesort.Thunk) (join func()) {
	panics := make([]interface{}, len(thunks))
	var wg sync.WaitGroup
	wg.Add(len(thunks))
	for i, thunk := range thunks {
		go func(i int, thunk gatesort.Thunk) {
			defer func() {
				panics[i] = internal.WrapPanic(recover())
				wg.Done()
			}()
			thunk()
		}(i, thunk)
	}
	return func() {
		wg.Wait()
		for _, p := range panics {
			if p != nil {
				panic(p)
			}
		}
	}
}

// Range receives a range, a batch count n, and a range function f,
// divides the range into batches, and invokes the range function for
// each of these batches in parallel, covering the half-open interval
// from low to high, including low but excluding high.
//
// The range is specified by a low and high integer, with low <=
// high. The batches are determined by dividing up the size of the
// range (high - low) by n. If n is 0, a reasonable default is used
// that takes runtime.GOMAXPROCS(0) into account.
//
// The range function is invoked for each batch in its own goroutine,
// with 0 <= low <= high, and Range returns only when all range
// functions have terminated, returning the left-most error value
// that is different from nil.
//
// Range panics if high < low, or if n < 0.
//
// If one or more range function invocations panic, the corresponding
// goroutines recover the panics, and Range eventually panics with
// the left-most recovered panic value.
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
