// Package config loads a saved hardware/model profile from YAML.
// A profile may pin only the fields it cares about; everything left unset
// falls back to the reference defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ja7ad/inferwatt/pkg/energy"
)

type Profile struct {
	Model struct {
		BasePowerW        float64  `yaml:"base_power_w"`
		ComputationFactor *float64 `yaml:"computation_factor"`
		MemoryUsageGB     *float64 `yaml:"memory_usage_gb"`
		MemoryPowerWPerGB *float64 `yaml:"memory_power_w_per_gb"`
		InferenceTimeSec  float64  `yaml:"inference_time_sec"`
		TDPW              float64  `yaml:"tdp_w"`
		CacheSizeMB       float64  `yaml:"cache_size_mb"`
		MemoryBandwidth   float64  `yaml:"memory_bandwidth_gb_s"`
	} `yaml:"model"`

	Sweep struct {
		MinBatch int `yaml:"min_batch"`
		MaxBatch int `yaml:"max_batch"`
	} `yaml:"sweep"`

	Output struct {
		CSV  string `yaml:"csv"`
		JSON string `yaml:"json"`
		HTML string `yaml:"html"`
	} `yaml:"output"`
}

// Load reads a profile from path.
func Load(path string) (Profile, error) {
	var p Profile
	b, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return p, nil
}

// Params converts the model section to engine parameters. Strictly-positive
// fields override the default only when > 0; the factors that legitimately
// accept zero are pointers so an explicit 0 in the file is respected.
func (p Profile) Params() energy.Params {
	out := energy.DefaultParams()
	if p.Model.BasePowerW > 0 {
		out.BasePower = p.Model.BasePowerW
	}
	if p.Model.ComputationFactor != nil {
		out.ComputationFactor = *p.Model.ComputationFactor
	}
	if p.Model.MemoryUsageGB != nil {
		out.MemoryUsage = *p.Model.MemoryUsageGB
	}
	if p.Model.MemoryPowerWPerGB != nil {
		out.MemoryPowerFactor = *p.Model.MemoryPowerWPerGB
	}
	if p.Model.InferenceTimeSec > 0 {
		out.InferenceTime = p.Model.InferenceTimeSec
	}
	if p.Model.TDPW > 0 {
		out.TDP = p.Model.TDPW
	}
	if p.Model.CacheSizeMB > 0 {
		out.CacheSize = p.Model.CacheSizeMB
	}
	if p.Model.MemoryBandwidth > 0 {
		out.MemoryBandwidth = p.Model.MemoryBandwidth
	}
	return out
}

// Range returns the sweep bounds, defaulting to [1, 128].
func (p Profile) Range() (minBatch, maxBatch int) {
	minBatch, maxBatch = 1, 128
	if p.Sweep.MinBatch > 0 {
		minBatch = p.Sweep.MinBatch
	}
	if p.Sweep.MaxBatch > 0 {
		maxBatch = p.Sweep.MaxBatch
	}
	return minBatch, maxBatch
}
