// Package strategy implements the moving-average-crossover trading rule
// used by the backtest and walk-forward engines.
package strategy

import (
	"fmt"

	"github.com/haln-dev/quantlab/internal/quanterr"
)

// DefaultCostRate is the transaction cost charged per position flip,
// 10 basis points.
const DefaultCostRate = 0.001

// Params holds the crossover windows. Fast must be strictly smaller than
// Slow and both must be at least 1.
type Params struct {
	Fast int
	Slow int
}

// Validate checks the window invariants eagerly, before any computation.
func (p Params) Validate() error {
	if p.Fast < 1 {
		return quanterr.NewInvalidParameter("crossover", "fast_window",
			fmt.Sprintf("must be at least 1, got %d", p.Fast))
	}
	if p.Slow < 1 {
		return quanterr.NewInvalidParameter("crossover", "slow_window",
			fmt.Sprintf("must be at least 1, got %d", p.Slow))
	}
	if p.Fast >= p.Slow {
		return quanterr.NewInvalidParameter("crossover", "fast_window",
			fmt.Sprintf("must be less than slow_window (%d >= %d)", p.Fast, p.Slow))
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("%d/%d", p.Fast, p.Slow)
}

// Simulation is the output of a crossover run. Positions is aligned to the
// input price series; Returns[i] is the strategy return for the period
// ending at price index i+1.
type Simulation struct {
	Positions []int
	Returns   []float64
}

// Simulate applies the crossover rule to a close price series.
//
// The raw signal at index t is 1 when the fast moving average is above the
// slow one, with both fully warmed up; otherwise 0. The position that earns
// period t's return is the signal from t-1, so information from period t
// can never affect the position held during t (no lookahead). A cost of
// costRate is charged in the period the signal flips.
//
// A slow window of len(closes) or more never produces a defined slow
// average: the result is an all-flat strategy with zero returns, not an
// error.
func Simulate(closes []float64, params Params, costRate float64) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(closes) < 2 {
		return nil, quanterr.NewInsufficientData("crossover simulate", len(closes), 2)
	}

	signals := crossoverSignals(closes, params)

	positions := make([]int, len(closes))
	returns := make([]float64, len(closes)-1)
	for t := 1; t < len(closes); t++ {
		positions[t] = signals[t-1]

		marketReturn := closes[t]/closes[t-1] - 1
		flip := signals[t] - signals[t-1]
		if flip < 0 {
			flip = -flip
		}
		returns[t-1] = marketReturn*float64(positions[t]) - costRate*float64(flip)
	}

	return &Simulation{Positions: positions, Returns: returns}, nil
}

// crossoverSignals computes the raw {0,1} signal series. Indices inside the
// slow warm-up carry no signal and stay 0.
func crossoverSignals(closes []float64, params Params) []int {
	signals := make([]int, len(closes))
	if params.Slow > len(closes) {
		return signals
	}

	fastSum := 0.0
	slowSum := 0.0
	for t, price := range closes {
		fastSum += price
		slowSum += price
		if t >= params.Fast {
			fastSum -= closes[t-params.Fast]
		}
		if t >= params.Slow {
			slowSum -= closes[t-params.Slow]
		}
		if t >= params.Slow-1 {
			fastMA := fastSum / float64(params.Fast)
			slowMA := slowSum / float64(params.Slow)
			if fastMA > slowMA {
				signals[t] = 1
			}
		}
	}
	return signals
}
