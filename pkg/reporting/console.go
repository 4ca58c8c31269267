// Package reporting renders the structured engine results for humans. Every
// rendering is derived from the structured reports, which remain the
// contract of record.
package reporting

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/haln-dev/quantlab/pkg/orchestrator"
)

// DisplayWeightThreshold hides dust allocations from rendered weight
// tables. The underlying WeightVector always keeps every entry.
const DisplayWeightThreshold = 0.01

// noDataMessage is the defined rendering of an empty provider result.
const noDataMessage = "No data found."

// ConsoleReporter renders reports as aligned tables.
type ConsoleReporter struct{}

// NewConsoleReporter creates a console reporter.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

// RenderBacktest renders a single backtest summary.
func (r *ConsoleReporter) RenderBacktest(report *orchestrator.BacktestReport) string {
	if report.NoData {
		return noDataMessage
	}

	metrics := report.Run.Metrics
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.SetTitle(fmt.Sprintf("Backtest %s (%s) [w/ costs]", report.Symbol, report.Run.Params))
	w.AppendRows([]table.Row{
		{"Total Return", fmt.Sprintf("%.2f%%", metrics.TotalReturn*100)},
		{"Sharpe Ratio", fmt.Sprintf("%.2f", metrics.SharpeRatio)},
		{"Max Drawdown", fmt.Sprintf("%.2f%%", metrics.MaxDrawdown*100)},
	})
	return w.Render()
}

// RenderWalkForward renders the windows and aggregate of a walk-forward
// run.
func (r *ConsoleReporter) RenderWalkForward(report *orchestrator.WalkForwardReport) string {
	if report.NoData {
		return noDataMessage
	}
	if len(report.Windows) == 0 {
		return fmt.Sprintf("Walk-forward %s: history too short for a single window", report.Symbol)
	}

	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.SetTitle(fmt.Sprintf("Walk-Forward Analysis %s", report.Symbol))
	w.AppendHeader(table.Row{"#", "Test Period", "Params", "Test Return"})
	for i, window := range report.Windows {
		w.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%s to %s", window.TestFrom.Format("2006-01-02"), window.TestTo.Format("2006-01-02")),
			window.Params.String(),
			fmt.Sprintf("%.2f%%", window.TestReturn*100),
		})
	}
	w.AppendFooter(table.Row{"", "", "Total (additive)", fmt.Sprintf("%.2f%%", report.TotalTestReturn*100)})
	w.AppendFooter(table.Row{"", "", "Compounded", fmt.Sprintf("%.2f%%", report.CompoundedReturn*100)})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	return w.Render()
}

// RenderWeights renders an allocation, hiding entries below the display
// threshold.
func (r *ConsoleReporter) RenderWeights(report *orchestrator.WeightsReport) string {
	if report.NoData {
		return noDataMessage
	}

	title := "Optimal Weights (Max Sharpe)"
	if report.Scheme == "risk_parity" {
		title = "Risk Parity Weights"
	}

	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.SetTitle(title)
	w.AppendHeader(table.Row{"Symbol", "Weight"})
	hidden := 0
	for _, entry := range report.Weights.Sorted() {
		if entry.Weight < DisplayWeightThreshold {
			hidden++
			continue
		}
		w.AppendRow(table.Row{entry.Symbol, fmt.Sprintf("%.4f", entry.Weight)})
	}
	if hidden > 0 {
		w.AppendFooter(table.Row{fmt.Sprintf("(%d below %.0f%%)", hidden, DisplayWeightThreshold*100), ""})
	}
	return w.Render()
}

// Summary joins rendered sections for multi-part console output.
func Summary(sections ...string) string {
	return strings.Join(sections, "\n\n")
}
