package backtest

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haln-dev/quantlab/internal/quanterr"
	"github.com/haln-dev/quantlab/internal/strategy"
)

func TestComputeMetrics_ScenarioMatchesManualCalculation(t *testing.T) {
	// Hand-derived strategy returns for prices
	// [100,102,101,105,108,107,110,115,112,118] with fast=2, slow=4: three
	// flat periods (the third paying the 10bps entry flip), then long.
	manual := []float64{
		0,
		0,
		-0.001,
		108.0/105.0 - 1,
		107.0/108.0 - 1,
		110.0/107.0 - 1,
		115.0/110.0 - 1,
		112.0/115.0 - 1,
		118.0/112.0 - 1,
	}

	metrics, err := ComputeMetrics(manual)
	require.NoError(t, err)

	// Total return compounds to the entry cost times the holding-span
	// price ratio.
	assert.InDelta(t, 0.999*118.0/105.0-1, metrics.TotalReturn, 1e-12)

	// Sharpe from the same mean/population-stddev convention.
	mean := 0.0
	for _, r := range manual {
		mean += r
	}
	mean /= float64(len(manual))
	variance := 0.0
	for _, r := range manual {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(manual))
	expectedSharpe := mean / math.Sqrt(variance) * math.Sqrt(252)
	assert.InDelta(t, expectedSharpe, metrics.SharpeRatio, 1e-9)
	assert.Greater(t, metrics.SharpeRatio, 0.0)

	// The only losing periods are small dips inside the long stretch.
	assert.Less(t, metrics.MaxDrawdown, 0.0)
	assert.Greater(t, metrics.MaxDrawdown, -0.05)
}

func TestComputeMetrics_AgreesWithSimulator(t *testing.T) {
	prices := []float64{100, 102, 101, 105, 108, 107, 110, 115, 112, 118}

	sim, err := strategy.Simulate(prices, strategy.Params{Fast: 2, Slow: 4}, strategy.DefaultCostRate)
	require.NoError(t, err)

	metrics, err := ComputeMetrics(sim.Returns)
	require.NoError(t, err)
	assert.InDelta(t, 0.999*118.0/105.0-1, metrics.TotalReturn, 1e-12)
}

func TestComputeMetrics_ZeroVarianceSharpeIsZero(t *testing.T) {
	metrics, err := ComputeMetrics([]float64{0.01, 0.01, 0.01})
	require.NoError(t, err)

	// Defined substitution, not an error.
	assert.Equal(t, 0.0, metrics.SharpeRatio)
	assert.InDelta(t, math.Pow(1.01, 3)-1, metrics.TotalReturn, 1e-12)
	assert.Equal(t, 0.0, metrics.MaxDrawdown)
}

func TestComputeMetrics_AllFlatStrategy(t *testing.T) {
	metrics, err := ComputeMetrics(make([]float64, 20))
	require.NoError(t, err)

	assert.Equal(t, 0.0, metrics.TotalReturn)
	assert.Equal(t, 0.0, metrics.SharpeRatio)
	assert.Equal(t, 0.0, metrics.MaxDrawdown)
}

func TestComputeMetrics_EmptyReturns(t *testing.T) {
	_, err := ComputeMetrics(nil)
	assert.True(t, errors.Is(err, quanterr.ErrInsufficientData))
}

func TestComputeMetrics_DrawdownUsesStrategyCurve(t *testing.T) {
	// Equity path 1.0 -> 1.1 -> 0.9 -> 1.05.
	returns := []float64{0.10, 0.9/1.1 - 1, 1.05/0.9 - 1}

	metrics, err := ComputeMetrics(returns)
	require.NoError(t, err)
	assert.InDelta(t, (0.9-1.1)/1.1, metrics.MaxDrawdown, 1e-9)
}

func TestEngine_Run(t *testing.T) {
	engine := NewEngine(0)
	assert.Equal(t, strategy.DefaultCostRate, engine.CostRate())

	prices := []float64{100, 102, 101, 105, 108, 107, 110, 115, 112, 118}
	result, err := engine.Run(prices, strategy.Params{Fast: 2, Slow: 4})
	require.NoError(t, err)

	assert.Equal(t, strategy.Params{Fast: 2, Slow: 4}, result.Params)
	assert.Len(t, result.Simulation.Positions, len(prices))
	assert.InDelta(t, 0.999*118.0/105.0-1, result.Metrics.TotalReturn, 1e-12)
}

func TestEngine_Run_InvalidParams(t *testing.T) {
	engine := NewEngine(strategy.DefaultCostRate)

	_, err := engine.Run([]float64{100, 101, 102}, strategy.Params{Fast: 4, Slow: 2})
	assert.True(t, errors.Is(err, quanterr.ErrInvalidParameter))
}
