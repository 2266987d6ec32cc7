// Command gatesort generates a random float64 slice, sorts it with the
// bounded parallel merge sort, verifies the result, and reports the elapsed
// time and the peak number of concurrently active sorting tasks.
//
// Usage:
//
//	gatesort [flags] <capacity> <size>
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
