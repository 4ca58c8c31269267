package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/haln-dev/quantlab/cmd/common"
	"github.com/haln-dev/quantlab/internal/strategy"
	"github.com/haln-dev/quantlab/pkg/orchestrator"
	"github.com/haln-dev/quantlab/pkg/reporting"
)

const appName = "quantlab-backtest"

func main() {
	flags := common.RegisterCommonFlags()
	symbol := flag.String("symbol", "", "Symbol to backtest (required)")
	fast := flag.Int("fast", 10, "Fast moving average window")
	slow := flag.Int("slow", 50, "Slow moving average window")
	flag.Parse()

	if *flags.Version {
		common.PrintVersion(appName)
		return
	}
	if *symbol == "" {
		log.Fatalf("❌ -symbol is required")
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
	report, err := svc.Backtest(context.Background(), *symbol, start, end, strategy.Params{Fast: *fast, Slow: *slow})
	if err != nil {
		log.Fatalf("❌ Backtest failed: %v", err)
	}

	fmt.Println(reporting.NewConsoleReporter().RenderBacktest(report))
}
