package energy

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTable(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return recs
}

func TestExportData_RoundTrip(t *testing.T) {
	opt, err := New(DefaultParams())
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "sweep.csv")
	_, err = opt.ExportData(1, 16, dest)
	require.NoError(t, err)

	recs := readTable(t, dest)
	require.Len(t, recs, 17) // header + 16 rows
	assert.Equal(t, Header, recs[0])

	for i, rec := range recs[1:] {
		b, err := strconv.Atoi(rec[0])
		require.NoError(t, err)
		assert.Equal(t, i+1, b, "batch column must ascend from 1")

		for col, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			require.NoError(t, err, "row %d col %d", i+1, col+1)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.NotContains(t, field, "e", "scientific notation leaked into %q", field)
			assert.True(t, strings.Contains(field, "."), "fixed decimals expected, got %q", field)
		}
	}
}

func TestExportData_OptimumRecomputableFromRows(t *testing.T) {
	opt, err := New(DefaultParams())
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "sweep.csv")
	best, err := opt.ExportData(1, 128, dest)
	require.NoError(t, err)

	// The plotting side recomputes the optimum from the fp16_efficiency
	// column alone; it must land on the same batch size.
	recs := readTable(t, dest)
	col := -1
	for i, name := range recs[0] {
		if name == "fp16_efficiency" {
			col = i
		}
	}
	require.NotEqual(t, -1, col)

	bestBatch, bestEff := 0, -1.0
	for _, rec := range recs[1:] {
		v, err := strconv.ParseFloat(rec[col], 64)
		require.NoError(t, err)
		if v > bestEff {
			bestEff = v
			bestBatch, _ = strconv.Atoi(rec[0])
		}
	}
	assert.Equal(t, best.For(FP16).BatchSize, bestBatch)
	t.Logf("fp16 optimum: batch %d, efficiency %.4f", bestBatch, bestEff)
}

func TestExportData_Boundaries(t *testing.T) {
	opt, err := New(DefaultParams())
	require.NoError(t, err)
	dir := t.TempDir()

	single := filepath.Join(dir, "single.csv")
	_, err = opt.ExportData(5, 5, single)
	require.NoError(t, err)
	recs := readTable(t, single)
	require.Len(t, recs, 2)
	assert.Equal(t, "5", recs[1][0])

	reversed := filepath.Join(dir, "reversed.csv")
	_, err = opt.ExportData(5, 1, reversed)
	require.ErrorIs(t, err, ErrInvalidRange)
	_, statErr := os.Stat(reversed)
	assert.True(t, os.IsNotExist(statErr), "no file may exist after a rejected range")
}

func TestExportData_IOFailure(t *testing.T) {
	opt, err := New(DefaultParams())
	require.NoError(t, err)

	// Parent of the destination is a regular file, so no directory can be
	// created and nothing may be left behind.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	dest := filepath.Join(blocker, "sweep.csv")
	_, err = opt.ExportData(1, 8, dest)
	require.ErrorIs(t, err, ErrExportFailed)
}

type failWriter struct{ n int }

func (w *failWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	if w.n > 64 {
		return 0, errors.New("disk full")
	}
	return len(p), nil
}

func TestWriteCSV_SurfacesWriterErrors(t *testing.T) {
	opt, err := New(DefaultParams())
	require.NoError(t, err)
	rows, _, err := opt.Sweep(1, 32)
	require.NoError(t, err)

	require.ErrorIs(t, WriteCSV(&failWriter{}, rows), ErrExportFailed)
}
