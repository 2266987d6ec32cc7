// Package gatesort provides a parallel merge sort for large float64 slices
// whose fan-out is bounded by an explicit concurrency budget. The total
// number of sorting and merging tasks that are active at the same time never
// exceeds the capacity of the gate the sort is given, and the gate records
// the peak number of tasks it observed.
//
// Gatesort provides the following subpackages:
//
// gatesort/sync provides Gate, the counting admission control primitive
// that hands out and reclaims execution tokens and tracks peak usage.
//
// gatesort/sort provides the sequential primitives (selection sort, merge,
// split-point search), the bounded parallel merge and merge sort, and a
// parallel verifier.
//
// gatesort/parallel provides fork/join functions for executing thunks, or
// functions over ranges, in parallel.
//
// gatesort/speculative provides a range predicate that terminates early as
// soon as its result is known.
//
// gatesort/sequential provides sequential implementations of functions from
// gatesort/parallel, for testing, debugging, and single-goroutine runs.
//
// The algorithms follow the cilksort family of parallel merge sorts. See
// http://supertech.csail.mit.edu/papers/steal.pdf for some theoretical
// background, and the sample chapter at
// https://mitpress.mit.edu/books/introduction-algorithms for a more practical
// overview of the underlying concepts.
package gatesort
