package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/inferwatt/pkg/energy"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FullProfile(t *testing.T) {
	p, err := Load(writeProfile(t, `
model:
  base_power_w: 75
  computation_factor: 3.0
  memory_usage_gb: 8
  memory_power_w_per_gb: 6
  inference_time_sec: 0.02
  tdp_w: 250
  cache_size_mb: 64
  memory_bandwidth_gb_s: 512
sweep:
  min_batch: 2
  max_batch: 64
output:
  csv: out/sweep.csv
`))
	require.NoError(t, err)

	params := p.Params()
	assert.Equal(t, 75.0, params.BasePower)
	assert.Equal(t, 3.0, params.ComputationFactor)
	assert.Equal(t, 8.0, params.MemoryUsage)
	assert.Equal(t, 6.0, params.MemoryPowerFactor)
	assert.Equal(t, 0.02, params.InferenceTime)
	assert.Equal(t, 250.0, params.TDP)
	assert.Equal(t, 64.0, params.CacheSize)
	assert.Equal(t, 512.0, params.MemoryBandwidth)

	minB, maxB := p.Range()
	assert.Equal(t, 2, minB)
	assert.Equal(t, 64, maxB)
	assert.Equal(t, "out/sweep.csv", p.Output.CSV)
}

func TestLoad_PartialProfileDefaults(t *testing.T) {
	p, err := Load(writeProfile(t, `
model:
  tdp_w: 300
`))
	require.NoError(t, err)

	def := energy.DefaultParams()
	params := p.Params()
	assert.Equal(t, 300.0, params.TDP)
	assert.Equal(t, def.BasePower, params.BasePower)
	assert.Equal(t, def.ComputationFactor, params.ComputationFactor)

	minB, maxB := p.Range()
	assert.Equal(t, 1, minB)
	assert.Equal(t, 128, maxB)
}

func TestLoad_ExplicitZeroFactor(t *testing.T) {
	p, err := Load(writeProfile(t, `
model:
  computation_factor: 0
  memory_power_w_per_gb: 0
`))
	require.NoError(t, err)

	params := p.Params()
	assert.Equal(t, 0.0, params.ComputationFactor)
	assert.Equal(t, 0.0, params.MemoryPowerFactor)
	require.NoError(t, params.Validate())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeProfile(t, "model: [not a map"))
	require.Error(t, err)
}
