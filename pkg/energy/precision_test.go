package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrecision_ParseRoundTrip(t *testing.T) {
	for _, p := range Precisions {
		got, err := ParsePrecision(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParsePrecision("fp64")
	require.Error(t, err)
}

func TestPrecision_CoefficientTable(t *testing.T) {
	// Multipliers strictly decrease and bonuses strictly increase as bit
	// width shrinks; fp32 is the baseline.
	assert.Equal(t, 1.0, coeffs[FP32].multiplier)
	assert.Equal(t, 0.0, coeffs[FP32].bonus)
	for i := 1; i < numPrecisions; i++ {
		assert.Less(t, coeffs[i].multiplier, coeffs[i-1].multiplier)
		assert.Greater(t, coeffs[i].bonus, coeffs[i-1].bonus)
		assert.Greater(t, coeffs[i].multiplier, 0.0)
	}
}
