// Command fetch downloads historical candles from Bybit into per-symbol
// CSV files that the csv source of the other commands can read back.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/haln-dev/quantlab/cmd/common"
	"github.com/haln-dev/quantlab/pkg/data"
)

const appName = "quantlab-fetch"

func main() {
	flags := common.RegisterCommonFlags()
	symbolsSpec := flag.String("symbols", "", "Comma-separated symbols to download (required)")
	outDir := flag.String("outdir", common.DefaultDataRoot, "Directory to write CSV files")
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

	start, end, err := common.ResolveRange(flags)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	*flags.Source = "bybit"
	provider, err := common.NewProvider(flags)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	ctx := context.Background()
	for _, symbol := range symbols {
		candles, err := provider.Fetch(ctx, symbol, start, end)
		if err != nil {
			log.Fatalf("❌ Failed to fetch %s: %v", symbol, err)
		}
		if len(candles) == 0 {
			log.Printf("⚠️  No candles for %s in range, skipping", symbol)
			continue
		}

		path := filepath.Join(*outDir, strings.ToUpper(symbol)+".csv")
		if err := data.WriteCSV(path, candles); err != nil {
			log.Fatalf("❌ Failed to write %s: %v", path, err)
		}
		fmt.Printf("%s: %d candles → %s\n", symbol, len(candles), path)
	}
}
