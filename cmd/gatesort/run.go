package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/exascience/gatesort/parallel"
	"github.com/exascience/gatesort/sequential"
	"github.com/exascience/gatesort/sort"
	"github.com/exascience/gatesort/sync"
)

// fillBatches is fixed so that the input only depends on the seed, not on
// GOMAXPROCS or on whether it is generated in parallel.
const fillBatches = 64

var errChecksum = errors.New("sorted values are not a permutation of the input")

type config struct {
	capacity   int
	size       int
	seed       int64
	sequential bool
	sortGrain  int
	mergeGrain int
}

type report struct {
	Capacity   int           `json:"capacity"`
	Size       int           `json:"size"`
	Sequential bool          `json:"sequential"`
	Elapsed    time.Duration `json:"elapsedNanos"`
	PeakUsage  int           `json:"peakUsage"`
	Stats      sort.Stats    `json:"stats"`
}

// fill writes uniformly distributed values in [0, math.MaxInt32) into data.
// Each batch draws from its own source, seeded with seed and the batch
// offset.
func fill(data []float64, seed int64, useParallel bool) error {
	f := func(low, high int) error {
		r := rand.New(rand.NewSource(seed + int64(low)))
		for i := low; i < high; i++ {
			data[i] = math.Floor(r.Float64() * math.MaxInt32)
		}
		return nil
	}
	if useParallel {
		return parallel.Range(0, len(data), fillBatches, f)
	}
	return sequential.Range(0, len(data), fillBatches, f)
}

func prepare(cfg config) (data, scratch []float64, err error) {
	data = make([]float64, cfg.size)
	thunks := []func() error{
		func() error { return fill(data, cfg.seed, !cfg.sequential) },
		func() error {
			scratch = make([]float64, cfg.size)
			return nil
		},
	}
	if cfg.sequential {
		err = sequential.Do(thunks...)
	} else {
		err = parallel.Do(thunks...)
	}
	return
}

func run(cfg config, logger *slog.Logger) (rep report, err error) {
	data, scratch, err := prepare(cfg)
	if err != nil {
		return rep, fmt.Errorf("generating input: %w", err)
	}
	checksum := floats.Sum(data)
	logger.Debug("generated input", slog.Int("size", cfg.size), slog.Int64("seed", cfg.seed))

	rep = report{Capacity: cfg.capacity, Size: cfg.size, Sequential: cfg.sequential}
	start := time.Now()
	if cfg.sequential {
		sort.SequentialMergeSort(data, scratch)
		rep.Elapsed = time.Since(start)
	} else {
		gate := sync.NewGate(cfg.capacity)
		sorter := &sort.MergeSorter{
			Gate:           gate,
			SortGrainSize:  cfg.sortGrain,
			MergeGrainSize: cfg.mergeGrain,
			Logger:         logger,
		}
		sorter.Sort(data, scratch)
		rep.Elapsed = time.Since(start)
		rep.PeakUsage = gate.PeakUsage()
		rep.Stats = sorter.Stats()
	}
	logger.Debug("sort finished", slog.Duration("elapsed", rep.Elapsed))

	if err := sort.Verify(data); err != nil {
		return rep, err
	}
	if sum := floats.Sum(data); !floats.EqualWithinRel(checksum, sum, 1e-9) {
		return rep, fmt.Errorf("%w: sum %v, want %v", errChecksum, sum, checksum)
	}
	return rep, nil
}
