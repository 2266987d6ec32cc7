package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
)

type options struct {
	seed       int64
	sequential bool
	sortGrain  int
	mergeGrain int
	verbose    bool
	jsonOut    bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "gatesort <capacity> <size>",
		Short: "Benchmark a parallel merge sort bounded by a concurrency budget",
		Long: `gatesort fills a slice of <size> random float64 values, sorts it with a
parallel merge sort that never has more than <capacity> sorting or merging
tasks active at the same time, checks that the result is sorted, and prints
the elapsed time together with the peak number of active tasks.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := parseArgs(args, opts)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
			rep, err := run(cfg, logger)
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), rep)
			}
			printReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&opts.seed, "seed", 1, "Seed for the random input")
	flags.BoolVar(&opts.sequential, "sequential", false, "Use the single-goroutine merge sort instead")
	flags.IntVar(&opts.sortGrain, "sort-grain", 0, "Largest range that is sorted sequentially (0 for the default)")
	flags.IntVar(&opts.mergeGrain, "merge-grain", 0, "Largest shorter run that is merged sequentially (0 for the default)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	flags.BoolVar(&opts.jsonOut, "json", false, "Print the report in JSON format")
	return cmd
}

func parseArgs(args []string, opts options) (config, error) {
	capacity, err := strconv.Atoi(args[0])
	if err != nil {
		return config{}, fmt.Errorf("invalid capacity %q: %w", args[0], err)
	}
	if capacity < 1 {
		return config{}, fmt.Errorf("invalid capacity %v: must be at least 1", capacity)
	}
	size, err := strconv.Atoi(args[1])
	if err != nil {
		return config{}, fmt.Errorf("invalid size %q: %w", args[1], err)
	}
	if size < 0 {
		return config{}, fmt.Errorf("invalid size %v: must not be negative", size)
	}
	if opts.sortGrain < 0 || opts.mergeGrain < 0 {
		return config{}, fmt.Errorf("grain sizes must not be negative")
	}
	return config{
		capacity:   capacity,
		size:       size,
		seed:       opts.seed,
		sequential: opts.sequential,
		sortGrain:  opts.sortGrain,
		mergeGrain: opts.mergeGrain,
	}, nil
}

// newLogger discards everything unless verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func printReport(w io.Writer, rep report) {
	fmt.Fprintln(w, "sorted")
	fmt.Fprintf(w, "Time: %v\n", rep.Elapsed)
	if !rep.Sequential {
		fmt.Fprintf(w, "Maximum number of concurrent tasks: %d\n", rep.PeakUsage)
		fmt.Fprintf(w, "Splits: %d sort, %d merge\n", rep.Stats.SortSplits, rep.Stats.MergeSplits)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
