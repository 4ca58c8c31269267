package portfolio

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haln-dev/quantlab/internal/quanterr"
)

// drifted overlays a constant drift on an alternating noise pattern.
func drifted(drift, amplitude float64, n int) []float64 {
	returns := alternating(amplitude, n)
	for i := range returns {
		returns[i] += drift
	}
	return returns
}

func TestMaxSharpeWeights_SimplexConstraints(t *testing.T) {
	symbols := []string{"AAA", "BBB", "CCC"}
	matrix := [][]float64{
		drifted(0.0010, 0.010, 120),
		drifted(0.0005, 0.015, 120),
		drifted(0.0002, 0.020, 120),
	}

	weights, err := MaxSharpeWeights(symbols, matrix)
	require.NoError(t, err)

	require.Len(t, weights, 3)
	for symbol, w := range weights {
		assert.GreaterOrEqual(t, w, 0.0, "weight for %s below bound", symbol)
		assert.LessOrEqual(t, w, 1.0, "weight for %s above bound", symbol)
	}
	assert.InDelta(t, 1.0, weights.Sum(), 1e-6)
}

func TestMaxSharpeWeights_FavorsDominantAsset(t *testing.T) {
	// GOOD strictly dominates: higher mean, identical noise pattern, so
	// any weight shifted to BAD lowers return without diversifying.
	symbols := []string{"GOOD", "BAD"}
	matrix := [][]float64{
		drifted(0.0100, 0.001, 100),
		drifted(-0.0020, 0.001, 100),
	}

	weights, err := MaxSharpeWeights(symbols, matrix)
	require.NoError(t, err)

	assert.Greater(t, weights["GOOD"], 0.8)
	assert.InDelta(t, 1.0, weights.Sum(), 1e-6)
}

func TestMaxSharpeWeights_ZeroVolatilityIsFlatNotFatal(t *testing.T) {
	// All-zero returns leave the objective flat at 0 everywhere; the solve
	// must settle instead of dividing by zero.
	symbols := []string{"A", "B"}
	matrix := [][]float64{
		make([]float64, 50),
		make([]float64, 50),
	}

	weights, err := MaxSharpeWeights(symbols, matrix)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, weights.Sum(), 1e-6)
}

func TestMaxSharpeWeights_SingleAsset(t *testing.T) {
	weights, err := MaxSharpeWeights([]string{"ONLY"}, [][]float64{drifted(0.001, 0.01, 60)})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, weights["ONLY"], 1e-9)
}

func TestMaxSharpeWeights_ShapeValidation(t *testing.T) {
	_, err := MaxSharpeWeights(nil, nil)
	assert.True(t, errors.Is(err, quanterr.ErrInvalidParameter))

	_, err = MaxSharpeWeights([]string{"A"}, [][]float64{{0.01}})
	assert.True(t, errors.Is(err, quanterr.ErrInsufficientData))

	_, err = MaxSharpeWeights([]string{"A", "B"}, [][]float64{
		drifted(0.001, 0.01, 10),
		drifted(0.001, 0.01, 12),
	})
	assert.True(t, errors.Is(err, quanterr.ErrInvalidParameter))
}

func TestMaxSharpeWeights_Deterministic(t *testing.T) {
	symbols := []string{"A", "B", "C"}
	matrix := [][]float64{
		drifted(0.0008, 0.012, 90),
		drifted(0.0004, 0.009, 90),
		drifted(0.0006, 0.020, 90),
	}

	first, err := MaxSharpeWeights(symbols, matrix)
	require.NoError(t, err)
	second, err := MaxSharpeWeights(symbols, matrix)
	require.NoError(t, err)

	for _, symbol := range symbols {
		assert.InDelta(t, first[symbol], second[symbol], 1e-12)
	}
}

func TestSoftmax(t *testing.T) {
	weights := softmax([]float64{0, 0, 0})
	for _, w := range weights {
		assert.InDelta(t, 1.0/3.0, w, 1e-12)
	}

	// Large coordinates must not overflow.
	weights = softmax([]float64{1000, 0})
	assert.False(t, math.IsNaN(weights[0]))
	assert.InDelta(t, 1.0, weights[0], 1e-9)
	assert.InDelta(t, 1.0, weights[0]+weights[1], 1e-12)
}
