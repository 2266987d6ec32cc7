package internal

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
)

// ComputeNofBatches divides the size of the range (high - low) by n. If n is 0,
// a default is used that takes runtime.GOMAXPROCS(0) into account.
func ComputeNofBatches(low, high, n int) (batches int) {
	switch size := high - low; {
	case size > 0:
		switch {
		case n == 0:
			batches = 2 * runtime.GOMAXPROCS(0)
		case n > 0:
			batches = n
		default:
			panic(fmt.Sprintf("invalid number of batches: %v", n))
		}
		if batches > size {
			batches = size
		}
	case size == 0:
		batches = 1
	default:
		panic(fmt.Sprintf("invalid range: %v:%v", low, high))
	}
	return
}

// SplitBatches computes where a range that is divided into n batches is split
// in two. The left part covers half of the batches, the right part the
// remaining n - half. If the left part would cover the whole range, ok is
// false and the range must be processed as a single batch.
func SplitBatches(low, high, n int) (mid, half int, ok bool) {
	if n < 1 {
		panic(fmt.Sprintf("invalid number of batches: %v", n))
	}
	if n == 1 {
		return high, 1, false
	}
	batchSize := ((high - low - 1) / n) + 1
	half = n / 2
	mid = low + batchSize*half
	return mid, half, mid < high
}

type runtimeError struct{ error }

func (runtimeError) RuntimeError() {}

// WrapPanic adds stack trace information to a recovered panic.
func WrapPanic(p interface{}) interface{} {
	if p != nil {
		s := fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
		if _, isError := p.(error); isError {
			r := errors.New(s)
			if _, isRuntimeError := p.(runtime.Error); isRuntimeError {
				return runtimeError{r}
			}
			return r
		}
		return s
	}
	return nil
}
