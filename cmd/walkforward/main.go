package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/haln-dev/quantlab/cmd/common"
	"github.com/haln-dev/quantlab/internal/backtest"
	"github.com/haln-dev/quantlab/pkg/orchestrator"
	"github.com/haln-dev/quantlab/pkg/reporting"
)

const appName = "quantlab-walkforward"

func main() {
	flags := common.RegisterCommonFlags()
	symbol := flag.String("symbol", "", "Symbol to analyze (required)")
	train := flag.Int("train", 252, "Training window length in periods")
	test := flag.Int("test", 63, "Test window length in periods")
	gridSpec := flag.String("grid", common.DefaultGrid, "Candidate grid as fast/slow pairs")
	workers := flag.Int("workers", 0, "Grid-search workers (default: NumCPU)")
	compound := flag.Bool("compound", false, "Report the compounded aggregate instead of the additive sum")
	xlsxPath := flag.String("xlsx", "", "Also write the windows to this .xlsx file")
	flag.Parse()

	if *flags.Version {
		common.PrintVersion(appName)
		return
	}
	if *symbol == "" {
		log.Fatalf("❌ -symbol is required")
	}

	grid, err := common.ParseGrid(*gridSpec)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	common.LoadEnvironment(*flags.EnvFile)
	common.StartMetricsServer(*flags.MetricsAddr)

	start, end, err := common.ResolveRange(flags)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	provider, err := common.NewProvider(flags)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	svc := orchestrator.NewService(provider, *flags.CostRate)
	report, err := svc.WalkForward(context.Background(), *symbol, start, end, *train, *test, grid, backtest.WalkForwardOptions{
		CostRate:          *flags.CostRate,
		Workers:           *workers,
		CompoundAggregate: *compound,
	})
	if err != nil {
		log.Fatalf("❌ Walk-forward failed: %v", err)
	}

	fmt.Println(reporting.NewConsoleReporter().RenderWalkForward(report))

	if *xlsxPath != "" && !report.NoData {
		if err := reporting.NewExcelReporter().WriteWalkForwardXLSX(report, *xlsxPath); err != nil {
			log.Fatalf("❌ Failed to write %s: %v", *xlsxPath, err)
		}
		fmt.Printf("Windows written to %s\n", *xlsxPath)
	}
}
