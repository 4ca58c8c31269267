// Package backtest simulates the crossover strategy over historical price
// series, measures its risk/return profile and re-optimizes its parameters
// on rolling out-of-sample windows. All entry points are pure functions
// over in-memory series and safe for concurrent callers on independent
// inputs.
package backtest

import (
	"github.com/haln-dev/quantlab/internal/strategy"
)

// Engine runs single crossover backtests with a fixed per-flip cost rate.
type Engine struct {
	costRate float64
}

// NewEngine creates a backtest engine. A non-positive costRate falls back
// to the default 10bps charge.
func NewEngine(costRate float64) *Engine {
	if costRate <= 0 {
		costRate = strategy.DefaultCostRate
	}
	return &Engine{costRate: costRate}
}

// RunResult bundles a backtest's metrics with the simulation that produced
// them. The structured form is the contract of record; human-readable
// summaries are derived from it by the reporting layer.
type RunResult struct {
	Params     strategy.Params
	Metrics    Result
	Simulation *strategy.Simulation
}

// Run simulates the crossover rule over a close price series and computes
// its metrics.
func (e *Engine) Run(closes []float64, params strategy.Params) (*RunResult, error) {
	sim, err := strategy.Simulate(closes, params, e.costRate)
	if err != nil {
		return nil, err
	}

	metrics, err := ComputeMetrics(sim.Returns)
	if err != nil {
		return nil, err
	}

	return &RunResult{
		Params:     params,
		Metrics:    metrics,
		Simulation: sim,
	}, nil
}

// CostRate returns the per-flip transaction cost the engine charges.
func (e *Engine) CostRate() float64 {
	return e.costRate
}
