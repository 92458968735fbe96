package energy

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Optimizer evaluates the analytic energy/efficiency model for one profile.
// It borrows the Params read-only; construct a new Optimizer for a new profile.
type Optimizer struct {
	params Params
}

// New validates p and returns an optimizer bound to it.
func New(p Params) (*Optimizer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Optimizer{params: p}, nil
}

// Params returns the profile the optimizer was built with.
func (o *Optimizer) Params() Params { return o.params }

// Energy returns the modeled power draw in Watts for one batch at the given
// precision, saturated at the profile's thermal design power.
func (o *Optimizer) Energy(batchSize int, prec Precision) float64 {
	b := float64(batchSize)

	// Sub-linear batch exponent models diminishing marginal power cost of
	// larger batches; ln(b+1) keeps batch size 1 off any singularity.
	compute := o.params.BasePower + o.params.ComputationFactor*math.Log(b+1)*math.Pow(b, 0.7)

	// Memory draw grows roughly linearly with batch size, tempered by cache.
	memory := o.params.MemoryPowerFactor * o.params.MemoryUsage *
		(1 + b/o.params.MemoryBandwidth) / math.Sqrt(o.params.CacheSize)

	raw := (compute + memory) * coeffs[prec].multiplier

	// Thermal throttling: saturate at TDP.
	return clamp(raw, 0, o.params.TDP)
}

// Efficiency returns useful throughput per Watt, scaled by the precision's
// quantization bonus. Zero energy yields zero efficiency rather than a
// non-finite value.
func (o *Optimizer) Efficiency(batchSize int, prec Precision) float64 {
	b := float64(batchSize)

	// Latency grows mildly with batch size from resource contention.
	throughput := b / (o.params.InferenceTime * (1 + b/o.params.TDP))

	return safeDiv(throughput, o.Energy(batchSize, prec)) * (1 + coeffs[prec].bonus)
}

// Row is one evaluated batch size; Energy and Efficiency are indexed
// by Precision.
type Row struct {
	BatchSize  int
	Energy     [numPrecisions]float64
	Efficiency [numPrecisions]float64
}

// Optimum is the efficiency-optimal batch size found for one precision.
type Optimum struct {
	Precision  Precision
	BatchSize  int
	Efficiency float64
}

// Optima holds one Optimum per precision, indexed by Precision.
type Optima [numPrecisions]Optimum

// For returns the optimum for prec.
func (o Optima) For(prec Precision) Optimum { return o[prec] }

// Sweep evaluates every integer batch size in [minBatch, maxBatch] for all
// precisions and returns the rows in ascending batch order together with each
// precision's efficiency optimum. Ties keep the smaller batch size.
func (o *Optimizer) Sweep(minBatch, maxBatch int) ([]Row, Optima, error) {
	if minBatch < 1 || minBatch > maxBatch {
		return nil, Optima{}, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, minBatch, maxBatch)
	}

	rows := make([]Row, maxBatch-minBatch+1)

	// Each cell is an independent pure computation. Goroutines own disjoint
	// row indices; the optimum reduction runs after the wait, so no shared
	// accumulator is mutated concurrently.
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range rows {
		i := i
		g.Go(func() error {
			b := minBatch + i
			rows[i].BatchSize = b
			for _, p := range Precisions {
				rows[i].Energy[p] = o.Energy(b, p)
				rows[i].Efficiency[p] = o.Efficiency(b, p)
			}
			return nil
		})
	}
	_ = g.Wait() // cells never fail

	var best Optima
	for _, p := range Precisions {
		best[p] = Optimum{Precision: p, BatchSize: rows[0].BatchSize, Efficiency: rows[0].Efficiency[p]}
		for _, r := range rows[1:] {
			if r.Efficiency[p] > best[p].Efficiency {
				best[p] = Optimum{Precision: p, BatchSize: r.BatchSize, Efficiency: r.Efficiency[p]}
			}
		}
	}
	return rows, best, nil
}

// OptimizeBatchSize returns the efficiency-optimal batch size for a single
// precision over [minBatch, maxBatch].
func (o *Optimizer) OptimizeBatchSize(prec Precision, minBatch, maxBatch int) (Optimum, error) {
	_, best, err := o.Sweep(minBatch, maxBatch)
	if err != nil {
		return Optimum{}, err
	}
	return best[prec], nil
}
