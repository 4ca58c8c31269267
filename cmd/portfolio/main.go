package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/haln-dev/quantlab/cmd/common"
	"github.com/haln-dev/quantlab/pkg/orchestrator"
	"github.com/haln-dev/quantlab/pkg/reporting"
)

const appName = "quantlab-portfolio"

func main() {
	flags := common.RegisterCommonFlags()
	symbolsSpec := flag.String("symbols", "", "Comma-separated symbols (required)")
	scheme := flag.String("scheme", "max-sharpe", "Allocation scheme: max-sharpe or risk-parity")
	flag.Parse()

	if *flags.Version {
		common.PrintVersion(appName)
		return
	}
	symbols := common.ParseSymbols(*symbolsSpec)
	if len(symbols) == 0 {
		log.Fatalf("❌ -symbols is required")
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
	ctx := context.Background()

	var report *orchestrator.WeightsReport
	switch *scheme {
	case "max-sharpe":
		report, err = svc.MaxSharpeWeights(ctx, symbols, start, end)
	case "risk-parity":
		report, err = svc.RiskParityWeights(ctx, symbols, start, end)
	default:
		log.Fatalf("❌ Unknown scheme %q (use max-sharpe or risk-parity)", *scheme)
	}
	if err != nil {
		log.Fatalf("❌ Optimization failed: %v", err)
	}

	fmt.Println(reporting.NewConsoleReporter().RenderWeights(report))
}
