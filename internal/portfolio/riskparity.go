package portfolio

import (
	"fmt"

	"github.com/haln-dev/quantlab/internal/quanterr"
	"github.com/haln-dev/quantlab/pkg/series"
)

// annualPeriods annualizes daily return and volatility figures.
const annualPeriods = 252

// RiskParityWeights computes naive risk-parity weights in closed form:
// w_i = (1/sigma_i) / sum_j(1/sigma_j), weighting each asset inversely to
// its own volatility. No solver is involved; the only failure mode is a
// zero-variance return series, which makes the inverse volatility
// undefined.
func RiskParityWeights(symbols []string, returnMatrix [][]float64) (WeightVector, error) {
	if err := validateMatrix(symbols, returnMatrix); err != nil {
		return nil, err
	}

	inverses := make([]float64, len(symbols))
	total := 0.0
	for i, returns := range returnMatrix {
		sigma := series.StdDev(returns)
		if sigma == 0 {
			return nil, quanterr.NewDegenerateInput("risk parity",
				fmt.Sprintf("return series %s has zero variance", symbols[i]))
		}
		inverses[i] = 1 / sigma
		total += inverses[i]
	}

	weights := make(WeightVector, len(symbols))
	for i, symbol := range symbols {
		weights[symbol] = inverses[i] / total
	}
	return weights, nil
}
