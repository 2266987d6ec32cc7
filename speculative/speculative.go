/*
Package speculative provides functions for expressing parallel
algorithms, similar to the functions in package parallel, except that
the implementations here terminate early when they can.

RangeAnd terminates early if the final return value is known early,
that is, as soon as the left half of a split returns false. It does not
stop the execution of invoked functions that may still be running in
parallel in that case. To ensure that compute resources are freed up,
range predicates can poll a shared flag, as the verifier in package
sort does.
*/
package speculative

import (
	"sync"

	"github.com/exascience/gatesort"
	"github.com/exascience/gatesort/internal"
)

/*
RangeAnd receives a range, a batch count n, and a range predicate
function, divides the range into batches, and invokes the range
predicate for each of these batches in parallel.

The range is specified by a low and high integer, with low <= high.
The batches are determined by dividing up the size of the range (high -
low) by n. If n is 0, a reasonable default is used that takes
runtime.GOMAXPROCS(0) into account.

The range predicate is invoked for each batch in its own goroutine,
with 0 <= low <= high, and RangeAnd returns only when all range
predicates have terminated, or when the left half of a split already
returned false, combining all return values with the && operator.

RangeAnd panics if high < low, or if n < 0.

If one or more range predicate invocations panic, the corresponding
goroutines recover the panics, and RangeAnd eventually panics with the
left-most recovered panic value, unless it terminates early.
*/
func RangeAnd(low, high, n int, f gatesort.RangePredicate) bool {
	var recur func(int, int, int) bool
	recur = func(low, high, n int) bool {
		mid, half, ok := internal.SplitBatches(low, high, n)
		if !ok {
			return f(low, high)
		}
		var b1 bool
		var p interface{}
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer func() {
				p = internal.WrapPanic(recover())
				wg.Done()
			}()
			b1 = recur(mid, high, n-half)
		}()
		if !recur(low, mid, half) {
			return false
		}
		wg.Wait()
		if p != nil {
			panic(p)
		}
		return b1
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}
