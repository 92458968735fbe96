package energy

import "fmt"

// Precision is one of the closed set of numeric formats the model evaluates.
// New formats require a new constant and a row in the coefficient table.
type Precision uint8

const (
	FP32 Precision = iota
	FP16
	INT8
	INT4

	numPrecisions = 4
)

// Precisions lists every variant in evaluation order.
var Precisions = [numPrecisions]Precision{FP32, FP16, INT8, INT4}

// coeffs holds the fixed engine constants per precision: relative power
// versus the FP32 baseline and a small throughput bonus for quantized
// formats. Not user-configurable.
var coeffs = [numPrecisions]struct {
	multiplier float64
	bonus      float64
}{
	FP32: {multiplier: 1.0, bonus: 0.0},
	FP16: {multiplier: 0.65, bonus: 0.05},
	INT8: {multiplier: 0.35, bonus: 0.10},
	INT4: {multiplier: 0.20, bonus: 0.15},
}

var precisionNames = [numPrecisions]string{"fp32", "fp16", "int8", "int4"}

func (p Precision) String() string {
	if int(p) < len(precisionNames) {
		return precisionNames[p]
	}
	return fmt.Sprintf("precision(%d)", uint8(p))
}

// ParsePrecision accepts the lowercase names used in profiles and column
// headers ("fp32", "fp16", "int8", "int4").
func ParsePrecision(s string) (Precision, error) {
	for i, n := range precisionNames {
		if s == n {
			return Precision(i), nil
		}
	}
	return 0, fmt.Errorf("unknown precision %q", s)
}
