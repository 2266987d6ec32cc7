package sort

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/exascience/gatesort/parallel"
	"github.com/exascience/gatesort/sync"
)

/*
A MergeSorter sorts float64 slices with a parallel merge sort whose
fan-out is bounded by Gate.

Every recursive sort and merge call holds one token of Gate while it
decides whether to run sequentially or to split. A call that splits
releases its token right after starting its two children, and before
waiting for them, so the children can acquire their own tokens.

The grain sizes default to DefaultSortGrainSize, DefaultMergeGrainSize,
and DefaultSelectionGrainSize when zero or negative.

A MergeSorter must not be copied after first use. It may be used by
several sorts at the same time, in which case they share Gate and the
split counters.
*/
type MergeSorter struct {
	// Gate bounds the number of active tasks. It must not be nil.
	Gate *sync.Gate

	// Ranges of at most SortGrainSize elements are sorted sequentially.
	SortGrainSize int

	// Merges whose shorter run has at most MergeGrainSize elements are
	// performed sequentially.
	MergeGrainSize int

	// Ranges of at most SelectionGrainSize elements are sorted with
	// SelectionSort in the sequential base case.
	SelectionGrainSize int

	// Logger receives a debug record after each sort, with the splits
	// of that sort. Nil disables logging.
	Logger *slog.Logger

	sortSplits, mergeSplits atomic.Int64
}

// Stats reports how often a MergeSorter split a sort or a merge into two
// parallel tasks.
type Stats struct {
	SortSplits  int64 `json:"sortSplits"`
	MergeSplits int64 `json:"mergeSplits"`
}

// NewMergeSorter returns a MergeSorter with default grain sizes that is
// bounded by gate.
func NewMergeSorter(gate *sync.Gate) *MergeSorter {
	return &MergeSorter{Gate: gate}
}

// Float64s sorts data in increasing order, using scratch as temporary
// memory and gate to bound the number of active tasks. The scratch slice
// must be at least as long as data.
func Float64s(data, scratch []float64, gate *sync.Gate) {
	NewMergeSorter(gate).Sort(data, scratch)
}

// Stats returns the split counters accumulated so far.
func (s *MergeSorter) Stats() Stats {
	return Stats{
		SortSplits:  s.sortSplits.Load(),
		MergeSplits: s.mergeSplits.Load(),
	}
}

func (s *MergeSorter) sortGrainSize() int {
	if s.SortGrainSize > 0 {
		return s.SortGrainSize
	}
	return DefaultSortGrainSize
}

func (s *MergeSorter) mergeGrainSize() int {
	if s.MergeGrainSize > 0 {
		return s.MergeGrainSize
	}
	return DefaultMergeGrainSize
}

func (s *MergeSorter) selectionGrainSize() int {
	if s.SelectionGrainSize > 0 {
		return s.SelectionGrainSize
	}
	return DefaultSelectionGrainSize
}

/*
Sort sorts data in place in increasing order. The scratch slice must be
at least as long as data. Its first len(data) elements are overwritten;
data and scratch must not overlap.

Sort is not stable. Slices with fewer than two elements are returned
unchanged without acquiring a token.
*/
func (s *MergeSorter) Sort(data, scratch []float64) {
	if len(scratch) < len(data) {
		panic(fmt.Sprintf("scratch buffer too short: %v < %v", len(scratch), len(data)))
	}
	if len(data) < 2 {
		return
	}
	before := s.Stats()
	s.pSort(data, scratch[:len(data)])
	if s.Logger != nil {
		// Concurrent sorts on the same MergeSorter also show up in the
		// difference.
		after := s.Stats()
		s.Logger.Debug("sorted",
			slog.Int("len", len(data)),
			slog.Int64("sortSplits", after.SortSplits-before.SortSplits),
			slog.Int64("mergeSplits", after.MergeSplits-before.MergeSplits),
			slog.Int("peakUsage", s.Gate.PeakUsage()),
		)
	}
}

func (s *MergeSorter) pSort(data, scratch []float64) {
	s.Gate.Acquire()
	if len(data) <= s.sortGrainSize() {
		sequentialSort(data, s.selectionGrainSize())
		s.Gate.Release()
		return
	}
	s.sortSplits.Add(1)
	half := len(data) / 2
	join := parallel.Fork(
		func() { s.pSort(data[:half], scratch[:half]) },
		func() { s.pSort(data[half:], scratch[half:]) },
	)
	s.Gate.Release()
	join()
	s.pMerge(data[:half], data[half:], scratch)
	copy(data, scratch)
}

// Merge merges the sorted runs a and b into c[:len(a)+len(b)] in parallel.
// The slice c must not overlap a or b. On equal elements, Merge gives no
// guarantee about which run contributes first.
func (s *MergeSorter) Merge(a, b, c []float64) {
	n := len(a) + len(b)
	if len(c) < n {
		panic(fmt.Sprintf("merge destination too short: %v < %v", len(c), n))
	}
	if n == 0 {
		return
	}
	s.pMerge(a, b, c[:n])
}

func (s *MergeSorter) pMerge(a, b, c []float64) {
	s.Gate.Acquire()
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) <= s.mergeGrainSize() {
		SequentialMerge(a, b, c)
		s.Gate.Release()
		return
	}
	s.mergeSplits.Add(1)
	mid1 := len(a) / 2
	mid2 := SearchSplit(a[mid1], b, 0, len(b))
	mid3 := mid1 + mid2
	c[mid3] = a[mid1]
	join := parallel.Fork(
		func() { s.pMerge(a[:mid1], b[:mid2], c[:mid3]) },
		func() { s.pMerge(a[mid1+1:], b[mid2:], c[mid3+1:]) },
	)
	s.Gate.Release()
	join()
}
