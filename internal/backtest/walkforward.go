package backtest

import (
	"github.com/haln-dev/quantlab/internal/quanterr"
	"github.com/haln-dev/quantlab/internal/strategy"
)

// Window is one train/test segment of a walk-forward run. Index bounds are
// half-open offsets into the price series the run was given; test segments
// are contiguous and non-overlapping, and every train segment precedes its
// paired test segment.
type Window struct {
	TrainStart int
	TrainEnd   int
	TestStart  int
	TestEnd    int
	Params     strategy.Params
	TrainScore float64
	TestReturn float64
}

// WalkForwardOptions tunes a walk-forward run.
type WalkForwardOptions struct {
	// CostRate is the per-flip transaction cost; non-positive selects the
	// default 10bps.
	CostRate float64

	// Workers caps the parallel candidate evaluations; non-positive uses
	// one worker per CPU.
	Workers int

	// CompoundAggregate makes the headline Aggregate figure compound the
	// per-window test returns instead of summing them. The additive sum is
	// the historical default and stays available on the report either way.
	CompoundAggregate bool
}

// WalkForwardReport aggregates out-of-sample performance across windows.
//
// TotalTestReturn sums the per-window test returns without compounding.
// That additive combination understates multiplicative growth; it is kept
// as the default for compatibility with the established behavior, with the
// compounded figure alongside it.
type WalkForwardReport struct {
	Windows          []Window
	TotalTestReturn  float64
	CompoundedReturn float64
	Aggregate        float64
}

// WalkForward partitions a close price series into sequential train/test
// windows, grid-searches the crossover parameters on each train slice and
// applies the winner to the adjacent test slice.
//
// The train window is fixed-size and rolls forward by testPeriods each
// iteration, so test segments never overlap. Candidates are scored by the
// sum of their in-sample strategy returns; ties keep the earliest candidate
// in grid order. The test slice warms up its own moving averages and never
// inherits state from the train slice. A history too short for even one
// window yields an empty report and zero aggregate, not an error.
func WalkForward(closes []float64, trainPeriods, testPeriods int, grid []strategy.Params, opts WalkForwardOptions) (*WalkForwardReport, error) {
	if trainPeriods < 2 {
		return nil, quanterr.NewInvalidParameter("walk forward", "train_periods", "must be at least 2")
	}
	if testPeriods < 2 {
		return nil, quanterr.NewInvalidParameter("walk forward", "test_periods", "must be at least 2")
	}

	candidates, err := validateGrid(grid)
	if err != nil {
		return nil, err
	}

	costRate := opts.CostRate
	if costRate <= 0 {
		costRate = strategy.DefaultCostRate
	}

	var starts []int
	for start := 0; start+trainPeriods+testPeriods <= len(closes); start += testPeriods {
		starts = append(starts, start)
	}

	report := &WalkForwardReport{}
	if len(starts) == 0 {
		return report, nil
	}

	scores, err := scoreCandidates(closes, starts, trainPeriods, candidates, costRate, opts.Workers)
	if err != nil {
		return nil, err
	}

	compounded := 1.0
	for wi, start := range starts {
		trainEnd := start + trainPeriods
		testEnd := trainEnd + testPeriods

		best := 0
		for ci := 1; ci < len(candidates); ci++ {
			if scores[wi*len(candidates)+ci] > scores[wi*len(candidates)+best] {
				best = ci
			}
		}
		winner := candidates[best]

		testSim, err := strategy.Simulate(closes[trainEnd:testEnd], winner, costRate)
		if err != nil {
			return nil, err
		}
		testReturn := 0.0
		for _, r := range testSim.Returns {
			testReturn += r
		}

		report.Windows = append(report.Windows, Window{
			TrainStart: start,
			TrainEnd:   trainEnd,
			TestStart:  trainEnd,
			TestEnd:    testEnd,
			Params:     winner,
			TrainScore: scores[wi*len(candidates)+best],
			TestReturn: testReturn,
		})
		report.TotalTestReturn += testReturn
		compounded *= 1 + testReturn
	}

	report.CompoundedReturn = compounded - 1
	if opts.CompoundAggregate {
		report.Aggregate = report.CompoundedReturn
	} else {
		report.Aggregate = report.TotalTestReturn
	}
	return report, nil
}

// validateGrid filters the candidate set down to valid fast<slow pairs,
// preserving grid order for the tie-break rule. A grid with no usable pair
// is rejected before any computation begins.
func validateGrid(grid []strategy.Params) ([]strategy.Params, error) {
	candidates := make([]strategy.Params, 0, len(grid))
	for _, params := range grid {
		if params.Validate() == nil {
			candidates = append(candidates, params)
		}
	}
	if len(candidates) == 0 {
		return nil, quanterr.NewInvalidParameter("walk forward", "param_grid",
			"no candidate pair satisfies fast_window < slow_window")
	}
	return candidates, nil
}

// scoreCandidates fans every (window, candidate) pair out over the grid
// pool and returns the in-sample scores indexed by window-major order.
func scoreCandidates(closes []float64, starts []int, trainPeriods int, candidates []strategy.Params, costRate float64, workers int) ([]float64, error) {
	total := len(starts) * len(candidates)

	pool := NewGridPool(workers, total, costRate)
	pool.Start()
	defer pool.Stop()

	for wi, start := range starts {
		train := closes[start : start+trainPeriods]
		for ci, params := range candidates {
			if err := pool.Submit(gridJob{Index: wi*len(candidates) + ci, Params: params, Closes: train}); err != nil {
				return nil, err
			}
		}
	}

	scores := make([]float64, total)
	for i := 0; i < total; i++ {
		result := <-pool.Results()
		if result.Err != nil {
			return nil, result.Err
		}
		scores[result.Index] = result.Score
	}
	return scores, nil
}
