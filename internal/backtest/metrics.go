package backtest

import (
	"math"

	"github.com/haln-dev/quantlab/internal/quanterr"
	"github.com/haln-dev/quantlab/pkg/series"
)

// PeriodsPerYear annualizes daily-period Sharpe ratios.
const PeriodsPerYear = 252

// Result holds the risk/return profile of a single strategy run.
type Result struct {
	TotalReturn float64
	SharpeRatio float64
	MaxDrawdown float64
}

// ComputeMetrics computes the backtest metrics from a strategy's per-period
// return series.
//
// TotalReturn compounds the returns. SharpeRatio is mean/stddev*sqrt(252)
// using the population standard deviation, consistent with the mean over
// the same n; a zero-variance series yields a Sharpe of 0.0 by definition
// rather than an error. MaxDrawdown is taken on the strategy's own equity
// curve, not the underlying asset's.
func ComputeMetrics(strategyReturns []float64) (Result, error) {
	if len(strategyReturns) < 1 {
		return Result{}, quanterr.NewInsufficientData("compute metrics", len(strategyReturns), 1)
	}

	equity := series.EquityCurve(strategyReturns)
	totalReturn := equity[len(equity)-1] - 1

	maxDrawdown, err := series.MaxDrawdown(equity)
	if err != nil {
		return Result{}, err
	}

	sharpe := 0.0
	if stdDev := series.StdDev(strategyReturns); stdDev > 0 {
		sharpe = series.Mean(strategyReturns) / stdDev * math.Sqrt(PeriodsPerYear)
	}

	return Result{
		TotalReturn: totalReturn,
		SharpeRatio: sharpe,
		MaxDrawdown: maxDrawdown,
	}, nil
}
