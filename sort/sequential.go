package sort

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// SelectionSort sorts data in increasing order by repeatedly swapping the
// minimum of the unsorted suffix into place. It is quadratic, and only
// meant for ranges of at most a few dozen elements.
func SelectionSort(data []float64) {
	for i := 0; i < len(data)-1; i++ {
		k := i
		for j := i + 1; j < len(data); j++ {
			if data[j] < data[k] {
				k = j
			}
		}
		data[i], data[k] = data[k], data[i]
	}
}

// SequentialSort sorts data in place in increasing order. Ranges of at most
// DefaultSelectionGrainSize elements are sorted with SelectionSort, larger
// ones with pattern-defeating quicksort.
func SequentialSort(data []float64) {
	sequentialSort(data, DefaultSelectionGrainSize)
}

func sequentialSort(data []float64, selectionGrainSize int) {
	if len(data) <= selectionGrainSize {
		SelectionSort(data)
		return
	}
	slices.Sort(data)
}

/*
SequentialMerge merges the sorted runs a and b into c[:len(a)+len(b)].

When a[i] == b[j], the element from b is written first, so the merge is
not stable with respect to the order of a and b. If a or b is not
sorted, the result is unspecified.
*/
func SequentialMerge(a, b, c []float64) {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] < b[j] {
			c[i+j] = a[i]
			i++
		} else {
			c[i+j] = b[j]
			j++
		}
	}
	if i == len(a) {
		copy(c[i+j:], b[j:])
	} else {
		copy(c[i+j:], a[i:])
	}
}

/*
SearchSplit searches the sorted range b[left:right] for the position at
which x would be inserted to keep b sorted, that is, the smallest index
i in [left, right] such that x <= b[i]. For the result i it holds that
b[i-1] < x <= b[i], except at the boundaries i == left and i == right.

Merging a[:m] with b[:i] and a[m:] with b[i:], where x == a[m], yields
two independent merges whose concatenation is the merge of a and b.
*/
func SearchSplit(x float64, b []float64, left, right int) int {
	if (right <= left) || (x <= b[left]) {
		return left
	}
	// b[low] < x, and either high == right or x <= b[high]
	low, high := left, right
	for high-low > 1 {
		mid := int(uint(low+high) >> 1)
		if b[mid] < x {
			low = mid
		} else {
			high = mid
		}
	}
	return high
}

// SequentialMergeSort sorts data in increasing order on the calling
// goroutine, using a recursive merge sort with a selection sort base case.
// The scratch slice must be at least as long as data.
func SequentialMergeSort(data, scratch []float64) {
	if len(scratch) < len(data) {
		panic(fmt.Sprintf("scratch buffer too short: %v < %v", len(scratch), len(data)))
	}
	sMergeSort(data, scratch[:len(data)])
}

func sMergeSort(data, scratch []float64) {
	if len(data) <= DefaultSelectionGrainSize {
		SelectionSort(data)
		return
	}
	half := len(data) / 2
	sMergeSort(data[:half], scratch[:half])
	sMergeSort(data[half:], scratch[half:])
	SequentialMerge(data[:half], data[half:], scratch)
	copy(data, scratch)
}
