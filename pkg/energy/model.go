package energy

import (
	"fmt"
	"math"
)

// Params describes one hardware/model profile.
// Units:
//   - BasePower/TDP: Watts
//   - ComputationFactor: dimensionless compute power scaling
//   - MemoryUsage: GB working set
//   - MemoryPowerFactor: Watts per GB
//   - InferenceTime: seconds per inference at batch size 1
//   - CacheSize: MB
//   - MemoryBandwidth: GB/s
//
// Params is a plain value; all behavior lives in Optimizer.
type Params struct {
	BasePower         float64
	ComputationFactor float64
	MemoryUsage       float64
	MemoryPowerFactor float64
	InferenceTime     float64
	TDP               float64
	CacheSize         float64
	MemoryBandwidth   float64
}

// DefaultParams returns a Params pre-filled with the reference profile.
func DefaultParams() Params {
	return Params{
		BasePower:         50.0, // W at idle
		ComputationFactor: 2.5,
		MemoryUsage:       4.0,   // GB
		MemoryPowerFactor: 5.0,   // W/GB
		InferenceTime:     0.05,  // s per inference at batch size 1
		TDP:               100.0, // W ceiling
		CacheSize:         32.0,  // MB
		MemoryBandwidth:   256.0, // GB/s
	}
}

// Validate reports ErrInvalidParameter for the first non-physical field.
// ComputationFactor, MemoryUsage and MemoryPowerFactor may be zero;
// every other field must be strictly positive. All fields must be finite.
func (p Params) Validate() error {
	checks := []struct {
		name   string
		v      float64
		zeroOK bool
	}{
		{"base_power_consumption", p.BasePower, false},
		{"computation_factor", p.ComputationFactor, true},
		{"memory_usage", p.MemoryUsage, true},
		{"memory_power_factor", p.MemoryPowerFactor, true},
		{"inference_time", p.InferenceTime, false},
		{"thermal_design_power", p.TDP, false},
		{"cache_size", p.CacheSize, false},
		{"memory_bandwidth", p.MemoryBandwidth, false},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParameter, c.name)
		}
		if c.v < 0 || (c.v == 0 && !c.zeroOK) {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidParameter, c.name, c.v)
		}
	}
	return nil
}
