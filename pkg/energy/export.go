package energy

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Header is the fixed column contract consumed by the plotting side.
// INT4 is modeled internally but stays out of the table.
var Header = []string{
	"batch_size",
	"fp32_energy", "fp16_energy", "int8_energy",
	"fp32_efficiency", "fp16_efficiency", "int8_efficiency",
}

// csvPrecisions are the exported precisions, in column order.
var csvPrecisions = []Precision{FP32, FP16, INT8}

// WriteCSV streams rows to w under the fixed header. Floats are written in
// fixed decimal notation so downstream plotting never sees scientific form.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	rec := make([]string, len(Header))
	for _, r := range rows {
		rec[0] = strconv.Itoa(r.BatchSize)
		for i, p := range csvPrecisions {
			rec[1+i] = fmtFloat(r.Energy[p])
			rec[4+i] = fmtFloat(r.Efficiency[p])
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("%w: %v", ErrExportFailed, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// ExportData sweeps [minBatch, maxBatch] and writes the table to path.
// The write is all-or-nothing: rows go to a temp file beside path which is
// renamed over it only after a successful flush, so an I/O failure never
// leaves a truncated table behind.
func (o *Optimizer) ExportData(minBatch, maxBatch int, path string) (Optima, error) {
	rows, best, err := o.Sweep(minBatch, maxBatch)
	if err != nil {
		return Optima{}, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Optima{}, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return Optima{}, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if err := WriteCSV(tmp, rows); err != nil {
		return Optima{}, err
	}
	if err := tmp.Close(); err != nil {
		return Optima{}, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return Optima{}, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return best, nil
}
