package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"

	"github.com/exascience/gatesort/sort"
)

func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestFillIsDeterministic(t *testing.T) {
	a := make([]float64, 5000)
	b := make([]float64, 5000)
	require.NoError(t, fill(a, 42, true))
	require.NoError(t, fill(b, 42, false))
	assert.Equal(t, a, b)

	c := make([]float64, 5000)
	require.NoError(t, fill(c, 43, true))
	assert.NotEqual(t, a, c)

	for _, v := range a {
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, float64(1<<31-1))
	}
}

func TestRun(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rep, err := run(config{capacity: 4, size: 50000, seed: 1, sortGrain: 1000, mergeGrain: 500}, logger)
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Capacity)
	assert.Positive(t, rep.PeakUsage)
	assert.LessOrEqual(t, rep.PeakUsage, 4)
	assert.Positive(t, rep.Stats.SortSplits)
	assert.Positive(t, rep.Stats.MergeSplits)

	rep, err = run(config{capacity: 1, size: 20000, seed: 1, sequential: true}, logger)
	require.NoError(t, err)
	assert.True(t, rep.Sequential)
	assert.Zero(t, rep.PeakUsage)

	rep, err = run(config{capacity: 2, size: 0, seed: 1}, logger)
	require.NoError(t, err)
	assert.Zero(t, rep.PeakUsage)
}

func TestPrepareMatchesAcrossModes(t *testing.T) {
	d1, s1, err := prepare(config{size: 3000, seed: 9})
	require.NoError(t, err)
	d2, s2, err := prepare(config{size: 3000, seed: 9, sequential: true})
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
	assert.Len(t, s1, 3000)
	assert.Len(t, s2, 3000)

	sorted := slices.Clone(d1)
	sort.SequentialMergeSort(sorted, s1)
	assert.NoError(t, sort.Verify(sorted))
}

func TestCommandTextOutput(t *testing.T) {
	out, _, err := executeCommand(t, "--sort-grain", "100", "--merge-grain", "50", "3", "2000")
	require.NoError(t, err)
	assert.Contains(t, out, "sorted\n")
	assert.Contains(t, out, "Maximum number of concurrent tasks:")
	assert.Contains(t, out, "Splits:")

	out, _, err = executeCommand(t, "--sequential", "3", "2000")
	require.NoError(t, err)
	assert.Contains(t, out, "sorted\n")
	assert.NotContains(t, out, "Maximum number of concurrent tasks:")
}

func TestCommandJSONOutput(t *testing.T) {
	out, _, err := executeCommand(t, "--json", "--seed", "7", "2", "100")
	require.NoError(t, err)

	var rep report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 2, rep.Capacity)
	assert.Equal(t, 100, rep.Size)
	assert.LessOrEqual(t, rep.PeakUsage, 2)
}

func TestCommandVerboseLogs(t *testing.T) {
	_, errOut, err := executeCommand(t, "-v", "2", "100")
	require.NoError(t, err)
	assert.Contains(t, errOut, "generated input")
	assert.Contains(t, errOut, "msg=sorted")
}

func TestCommandRejectsInvalidArguments(t *testing.T) {
	cases := map[string][]string{
		"zero capacity":     {"0", "10"},
		"negative capacity": {"--", "-1", "10"},
		"bad capacity":      {"x", "10"},
		"negative size":     {"--", "2", "-5"},
		"bad size":          {"2", "ten"},
		"missing size":      {"2"},
		"negative grain":    {"--sort-grain=-1", "2", "10"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := executeCommand(t, args...)
			assert.Error(t, err)
		})
	}
}
