// Package orchestrator is the caller-facing surface of the quantitative
// core. It wires an injected price provider to the backtest, walk-forward
// and portfolio engines and returns structured reports; human-readable
// summaries are derived from those reports by the reporting layer, so the
// structured form stays the contract of record.
package orchestrator

import (
	"context"
	"time"

	"github.com/haln-dev/quantlab/internal/backtest"
	"github.com/haln-dev/quantlab/internal/monitoring"
	"github.com/haln-dev/quantlab/internal/portfolio"
	"github.com/haln-dev/quantlab/internal/quanterr"
	"github.com/haln-dev/quantlab/internal/strategy"
	"github.com/haln-dev/quantlab/pkg/data"
	"github.com/haln-dev/quantlab/pkg/series"
	"github.com/haln-dev/quantlab/pkg/types"
)

// Service runs the quantitative engines against an injected price
// provider. It holds no mutable state and is safe for concurrent use.
type Service struct {
	provider data.PriceProvider
	engine   *backtest.Engine
}

// NewService creates a service around a price provider. A non-positive
// costRate selects the default 10bps transaction charge.
func NewService(provider data.PriceProvider, costRate float64) *Service {
	return &Service{
		provider: provider,
		engine:   backtest.NewEngine(costRate),
	}
}

// BacktestReport is the structured result of a single symbol backtest.
// NoData marks the defined condition of a provider returning an empty
// series for the range.
type BacktestReport struct {
	Symbol string
	Start  time.Time
	End    time.Time
	NoData bool
	Run    *backtest.RunResult
}

// Backtest fetches the symbol's history and runs a single crossover
// backtest over it.
func (s *Service) Backtest(ctx context.Context, symbol string, start, end time.Time, params strategy.Params) (*BacktestReport, error) {
	began := time.Now()

	candles, err := s.provider.Fetch(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	report := &BacktestReport{Symbol: symbol, Start: start, End: end}
	if len(candles) == 0 {
		report.NoData = true
		return report, nil
	}

	run, err := s.engine.Run(types.Closes(candles), params)
	if err != nil {
		return nil, err
	}
	report.Run = run

	monitoring.RecordBacktest(symbol, time.Since(began))
	return report, nil
}

// WindowView decorates a walk-forward window with the calendar span of its
// segments.
type WindowView struct {
	backtest.Window
	TrainFrom time.Time
	TrainTo   time.Time
	TestFrom  time.Time
	TestTo    time.Time
}

// WalkForwardReport is the structured result of a walk-forward run.
type WalkForwardReport struct {
	Symbol           string
	NoData           bool
	Windows          []WindowView
	TotalTestReturn  float64
	CompoundedReturn float64
	Aggregate        float64
}

// WalkForward fetches the symbol's history and re-optimizes the crossover
// parameters over rolling train/test windows.
func (s *Service) WalkForward(ctx context.Context, symbol string, start, end time.Time, trainPeriods, testPeriods int, grid []strategy.Params, opts backtest.WalkForwardOptions) (*WalkForwardReport, error) {
	began := time.Now()

	candles, err := s.provider.Fetch(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	view := &WalkForwardReport{Symbol: symbol}
	if len(candles) == 0 {
		view.NoData = true
		return view, nil
	}

	if opts.CostRate <= 0 {
		opts.CostRate = s.engine.CostRate()
	}
	report, err := backtest.WalkForward(types.Closes(candles), trainPeriods, testPeriods, grid, opts)
	if err != nil {
		return nil, err
	}

	view.TotalTestReturn = report.TotalTestReturn
	view.CompoundedReturn = report.CompoundedReturn
	view.Aggregate = report.Aggregate
	for _, w := range report.Windows {
		view.Windows = append(view.Windows, WindowView{
			Window:    w,
			TrainFrom: candles[w.TrainStart].Timestamp,
			TrainTo:   candles[w.TrainEnd-1].Timestamp,
			TestFrom:  candles[w.TestStart].Timestamp,
			TestTo:    candles[w.TestEnd-1].Timestamp,
		})
	}

	monitoring.RecordWalkForward(symbol, len(report.Windows), time.Since(began))
	return view, nil
}

// WeightsReport is the structured result of a portfolio optimization.
type WeightsReport struct {
	Scheme  string
	NoData  bool
	Weights portfolio.WeightVector
}

// MaxSharpeWeights fetches every symbol's history and solves for the
// maximum-Sharpe weight vector over their aligned return series.
func (s *Service) MaxSharpeWeights(ctx context.Context, symbols []string, start, end time.Time) (*WeightsReport, error) {
	return s.optimize(ctx, symbols, start, end, "max_sharpe", portfolio.MaxSharpeWeights)
}

// RiskParityWeights fetches every symbol's history and computes inverse
// volatility weights over their aligned return series.
func (s *Service) RiskParityWeights(ctx context.Context, symbols []string, start, end time.Time) (*WeightsReport, error) {
	return s.optimize(ctx, symbols, start, end, "risk_parity", portfolio.RiskParityWeights)
}

func (s *Service) optimize(ctx context.Context, symbols []string, start, end time.Time, scheme string, solve func([]string, [][]float64) (portfolio.WeightVector, error)) (*WeightsReport, error) {
	matrix, noData, err := s.returnMatrix(ctx, symbols, start, end)
	if err != nil {
		return nil, err
	}
	report := &WeightsReport{Scheme: scheme}
	if noData {
		report.NoData = true
		return report, nil
	}

	weights, err := solve(symbols, matrix)
	monitoring.RecordOptimization(scheme, err != nil)
	if err != nil {
		return nil, err
	}
	report.Weights = weights
	return report, nil
}

// returnMatrix fetches and aligns the return series for a basket. Series
// of unequal length are aligned on their most recent observations, the way
// a joined daily frame drops unmatched leading rows.
func (s *Service) returnMatrix(ctx context.Context, symbols []string, start, end time.Time) ([][]float64, bool, error) {
	if len(symbols) == 0 {
		return nil, false, quanterr.NewInvalidParameter("portfolio", "symbols", "at least one symbol is required")
	}

	matrix := make([][]float64, len(symbols))
	shortest := -1
	for i, symbol := range symbols {
		candles, err := s.provider.Fetch(ctx, symbol, start, end)
		if err != nil {
			return nil, false, err
		}
		if len(candles) == 0 {
			return nil, true, nil
		}

		returns, err := series.Returns(types.Closes(candles))
		if err != nil {
			return nil, false, err
		}
		matrix[i] = returns
		if shortest < 0 || len(returns) < shortest {
			shortest = len(returns)
		}
	}

	for i, returns := range matrix {
		matrix[i] = returns[len(returns)-shortest:]
	}
	return matrix, false, nil
}
