package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/haln-dev/quantlab/internal/strategy"
)

// DefaultGrid is the candidate grid walk-forward commands search when no
// -grid flag is given.
const DefaultGrid = "5/20,10/50,20/100,50/200"

// ParseGrid parses a comma-separated list of fast/slow pairs, e.g.
// "10/50,20/100". Pair validity (fast < slow, both positive) is enforced
// by the engine; this only checks the syntax.
func ParseGrid(s string) ([]strategy.Params, error) {
	var grid []strategy.Params
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		fastStr, slowStr, ok := strings.Cut(pair, "/")
		if !ok {
			return nil, fmt.Errorf("invalid grid entry %q (expected fast/slow)", pair)
		}
		fast, err := strconv.Atoi(strings.TrimSpace(fastStr))
		if err != nil {
			return nil, fmt.Errorf("invalid fast window in %q: %w", pair, err)
		}
		slow, err := strconv.Atoi(strings.TrimSpace(slowStr))
		if err != nil {
			return nil, fmt.Errorf("invalid slow window in %q: %w", pair, err)
		}
		grid = append(grid, strategy.Params{Fast: fast, Slow: slow})
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("grid %q contains no candidates", s)
	}
	return grid, nil
}

// ParseSymbols splits a comma-separated symbol list, trimming whitespace
// and dropping empties.
func ParseSymbols(s string) []string {
	var symbols []string
	for _, symbol := range strings.Split(s, ",") {
		symbol = strings.TrimSpace(symbol)
		if symbol != "" {
			symbols = append(symbols, symbol)
		}
	}
	return symbols
}
