package portfolio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haln-dev/quantlab/internal/quanterr"
)

// alternating builds a zero-mean series of +-amplitude with n observations,
// giving an exact population standard deviation of amplitude.
func alternating(amplitude float64, n int) []float64 {
	returns := make([]float64, n)
	for i := range returns {
		if i%2 == 0 {
			returns[i] = amplitude
		} else {
			returns[i] = -amplitude
		}
	}
	return returns
}

func TestRiskParityWeights_TwoAssetScenario(t *testing.T) {
	symbols := []string{"AAA", "BBB"}
	matrix := [][]float64{
		alternating(0.01, 100),
		alternating(0.02, 100),
	}

	weights, err := RiskParityWeights(symbols, matrix)
	require.NoError(t, err)

	// Std-devs 0.01 and 0.02 weight inversely: 2/3 and 1/3.
	assert.InDelta(t, 0.667, weights["AAA"], 1e-3)
	assert.InDelta(t, 0.333, weights["BBB"], 1e-3)
	assert.InDelta(t, 1.0, weights.Sum(), 1e-6)
}

func TestRiskParityWeights_InvariantToUniformRescaling(t *testing.T) {
	symbols := []string{"X", "Y", "Z"}
	base := [][]float64{
		alternating(0.010, 60),
		alternating(0.025, 60),
		alternating(0.040, 60),
	}

	scaled := make([][]float64, len(base))
	for i, returns := range base {
		scaled[i] = make([]float64, len(returns))
		for j, r := range returns {
			scaled[i][j] = r * 3.5
		}
	}

	original, err := RiskParityWeights(symbols, base)
	require.NoError(t, err)
	rescaled, err := RiskParityWeights(symbols, scaled)
	require.NoError(t, err)

	for _, symbol := range symbols {
		assert.InDelta(t, original[symbol], rescaled[symbol], 1e-9)
	}
	assert.InDelta(t, 1.0, rescaled.Sum(), 1e-6)
}

func TestRiskParityWeights_ZeroVarianceFails(t *testing.T) {
	symbols := []string{"FLAT", "VOL"}
	matrix := [][]float64{
		{0.01, 0.01, 0.01, 0.01},
		alternating(0.02, 4),
	}

	_, err := RiskParityWeights(symbols, matrix)
	assert.True(t, errors.Is(err, quanterr.ErrDegenerateInput))
	assert.Contains(t, err.Error(), "FLAT")
}

func TestRiskParityWeights_ShapeValidation(t *testing.T) {
	_, err := RiskParityWeights(nil, nil)
	assert.True(t, errors.Is(err, quanterr.ErrInvalidParameter))

	_, err = RiskParityWeights([]string{"A", "B"}, [][]float64{alternating(0.01, 10)})
	assert.True(t, errors.Is(err, quanterr.ErrInvalidParameter))

	_, err = RiskParityWeights([]string{"A", "B"}, [][]float64{
		alternating(0.01, 10),
		alternating(0.02, 8),
	})
	assert.True(t, errors.Is(err, quanterr.ErrInvalidParameter))

	_, err = RiskParityWeights([]string{"A"}, [][]float64{{0.01}})
	assert.True(t, errors.Is(err, quanterr.ErrInsufficientData))
}

func TestWeightVector_Sorted(t *testing.T) {
	weights := WeightVector{"LOW": 0.1, "HIGH": 0.6, "MID": 0.3}

	entries := weights.Sorted()
	require.Len(t, entries, 3)
	assert.Equal(t, "HIGH", entries[0].Symbol)
	assert.Equal(t, "MID", entries[1].Symbol)
	assert.Equal(t, "LOW", entries[2].Symbol)
}
