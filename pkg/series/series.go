// Package series derives return, equity and drawdown series from price
// series. Every transformation allocates a new slice; inputs are never
// mutated, so the functions are safe for concurrent callers.
package series

import (
	"gonum.org/v1/gonum/stat"

	"github.com/haln-dev/quantlab/internal/quanterr"
)

// Returns computes period-over-period fractional returns from a close price
// series: returns[i] = prices[i+1]/prices[i] - 1. The result is one element
// shorter than the input. Fewer than 2 observations is an
// InsufficientDataError.
func Returns(prices []float64) ([]float64, error) {
	if len(prices) < 2 {
		return nil, quanterr.NewInsufficientData("returns", len(prices), 2)
	}

	returns := make([]float64, len(prices)-1)
	for i := 0; i < len(prices)-1; i++ {
		returns[i] = prices[i+1]/prices[i] - 1
	}
	return returns, nil
}

// EquityCurve computes the cumulative product of (1+r) with a leading 1.0
// for the period before the first return. The result has len(returns)+1
// elements.
func EquityCurve(returns []float64) []float64 {
	equity := make([]float64, len(returns)+1)
	equity[0] = 1.0
	for i, r := range returns {
		equity[i+1] = equity[i] * (1 + r)
	}
	return equity
}

// Drawdown computes equity[t]/runningMax(equity[0..t]) - 1 for each period.
func Drawdown(equity []float64) []float64 {
	drawdown := make([]float64, len(equity))
	runningMax := 0.0
	for i, e := range equity {
		if e > runningMax {
			runningMax = e
		}
		if runningMax > 0 {
			drawdown[i] = e/runningMax - 1
		}
	}
	return drawdown
}

// MaxDrawdown returns the most negative value of the drawdown series, or 0
// for a monotonically non-decreasing curve. Fewer than 2 observations is an
// InsufficientDataError.
func MaxDrawdown(equity []float64) (float64, error) {
	if len(equity) < 2 {
		return 0, quanterr.NewInsufficientData("max drawdown", len(equity), 2)
	}

	maxDD := 0.0
	for _, dd := range Drawdown(equity) {
		if dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD, nil
}

// Mean returns the arithmetic mean of a series, 0 for an empty series.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// StdDev returns the population standard deviation of a series, consistent
// with Mean over the same n. Returns 0 for a series shorter than 2.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.PopStdDev(values, nil)
}
