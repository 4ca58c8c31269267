// Package portfolio solves capital-allocation weights over baskets of
// return series: a constrained maximum-Sharpe optimization and a
// closed-form inverse-volatility parity scheme.
package portfolio

import "sort"

// WeightVector maps symbols to non-negative allocation weights summing to 1
// within floating tolerance. It is always complete: entries below a display
// threshold are hidden by the reporting layer only, never dropped from the
// constraint-satisfying solution.
type WeightVector map[string]float64

// Sum returns the total weight, 1.0 within tolerance for any valid vector.
func (w WeightVector) Sum() float64 {
	total := 0.0
	for _, weight := range w {
		total += weight
	}
	return total
}

// Entry is a symbol/weight pair for ordered presentation.
type Entry struct {
	Symbol string
	Weight float64
}

// Sorted returns entries ordered by descending weight, symbols breaking
// ties, for deterministic output.
func (w WeightVector) Sorted() []Entry {
	entries := make([]Entry, 0, len(w))
	for symbol, weight := range w {
		entries = append(entries, Entry{Symbol: symbol, Weight: weight})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight > entries[j].Weight
		}
		return entries[i].Symbol < entries[j].Symbol
	})
	return entries
}
