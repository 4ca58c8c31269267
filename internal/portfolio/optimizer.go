package portfolio

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"

	"github.com/haln-dev/quantlab/internal/quanterr"
)

// volEpsilon is the annualized-volatility floor below which the objective
// goes flat instead of dividing by a vanishing denominator.
const volEpsilon = 1e-6

// MaxSharpeWeights solves for the weight vector maximizing the annualized
// Sharpe ratio of the combined portfolio, subject to the simplex constraint
// (every weight in [0,1], weights summing to 1).
//
// returnMatrix[i] is the per-period return series of symbols[i]; all series
// must share the same length of at least 2 observations. The simplex is
// enforced by reparametrizing the weights through a softmax, so every
// iterate is feasible by construction, and the solve is seeded from equal
// weights. A portfolio whose volatility is numerically zero scores a flat 0
// so the degenerate region cannot steer the solver. Non-convergence
// surfaces as an OptimizationError carrying the solver's status text.
func MaxSharpeWeights(symbols []string, returnMatrix [][]float64) (WeightVector, error) {
	if err := validateMatrix(symbols, returnMatrix); err != nil {
		return nil, err
	}

	n := len(symbols)
	periods := len(returnMatrix[0])

	means := make([]float64, n)
	for i, returns := range returnMatrix {
		means[i] = stat.Mean(returns, nil)
	}

	// Sample covariance over observations-by-assets.
	observations := mat.NewDense(periods, n, nil)
	for i, returns := range returnMatrix {
		for t, r := range returns {
			observations.Set(t, i, r)
		}
	}
	covariance := mat.NewSymDense(n, nil)
	stat.CovarianceMatrix(covariance, observations, nil)

	negSharpe := func(x []float64) float64 {
		weights := softmax(x)

		annReturn := 0.0
		for i, w := range weights {
			annReturn += w * means[i] * annualPeriods
		}

		wVec := mat.NewVecDense(n, weights)
		annVol := math.Sqrt(mat.Inner(wVec, covariance, wVec) * annualPeriods)
		if annVol < volEpsilon {
			return 0
		}
		return -annReturn / annVol
	}

	problem := optimize.Problem{Func: negSharpe}
	seed := make([]float64, n) // zeros map to equal weights through softmax

	result, err := optimize.Minimize(problem, seed, nil, &optimize.NelderMead{})
	if err != nil {
		status := "unknown"
		if result != nil {
			status = result.Status.String()
		}
		return nil, quanterr.NewOptimization("max sharpe", status, err)
	}
	if statusErr := result.Status.Err(); statusErr != nil {
		return nil, quanterr.NewOptimization("max sharpe", result.Status.String(), statusErr)
	}

	weights := softmax(result.X)
	solution := make(WeightVector, n)
	for i, symbol := range symbols {
		solution[symbol] = weights[i]
	}
	return solution, nil
}

// softmax maps unconstrained solver coordinates onto the simplex. The max
// shift keeps the exponentials from overflowing.
func softmax(x []float64) []float64 {
	maxX := x[0]
	for _, v := range x[1:] {
		if v > maxX {
			maxX = v
		}
	}

	weights := make([]float64, len(x))
	sum := 0.0
	for i, v := range x {
		weights[i] = math.Exp(v - maxX)
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// validateMatrix applies the shared shape checks for both optimizers.
func validateMatrix(symbols []string, returnMatrix [][]float64) error {
	if len(symbols) == 0 {
		return quanterr.NewInvalidParameter("portfolio", "symbols", "at least one symbol is required")
	}
	if len(symbols) != len(returnMatrix) {
		return quanterr.NewInvalidParameter("portfolio", "return_matrix",
			fmt.Sprintf("got %d return series for %d symbols", len(returnMatrix), len(symbols)))
	}
	for i, returns := range returnMatrix {
		if len(returns) < 2 {
			return quanterr.NewInsufficientData(fmt.Sprintf("portfolio series %s", symbols[i]), len(returns), 2)
		}
		if len(returns) != len(returnMatrix[0]) {
			return quanterr.NewInvalidParameter("portfolio", "return_matrix",
				fmt.Sprintf("series %s has %d observations, expected %d", symbols[i], len(returns), len(returnMatrix[0])))
		}
	}
	return nil
}
