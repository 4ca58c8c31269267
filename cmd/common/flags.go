// Package common holds the flag, environment and provider plumbing shared
// by the quantlab command line tools.
package common

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/haln-dev/quantlab/internal/exchange/bybit"
	"github.com/haln-dev/quantlab/internal/monitoring"
	"github.com/haln-dev/quantlab/pkg/data"
)

const (
	// DefaultDataRoot is the directory scanned for <SYMBOL>.csv files.
	DefaultDataRoot = "data"

	// DefaultSource selects local CSV files over the exchange API.
	DefaultSource = "csv"

	dateLayout = "2006-01-02"
)

// CommonFlags contains flags shared across the quantlab commands.
type CommonFlags struct {
	EnvFile     *string
	Source      *string
	DataRoot    *string
	Interval    *string
	Start       *string
	End         *string
	CostRate    *float64
	MetricsAddr *string
	Version     *bool
}

// RegisterCommonFlags registers the shared flags with the default flag set.
func RegisterCommonFlags() *CommonFlags {
	return &CommonFlags{
		EnvFile:     flag.String("env", ".env", "Environment file path"),
		Source:      flag.String("source", DefaultSource, "Price source: csv or bybit"),
		DataRoot:    flag.String("data-root", DefaultDataRoot, "CSV data root directory"),
		Interval:    flag.String("interval", string(bybit.Interval1d), "Kline interval for the bybit source"),
		Start:       flag.String("start", "", "Range start (YYYY-MM-DD, default: full history)"),
		End:         flag.String("end", "", "Range end (YYYY-MM-DD, default: today)"),
		CostRate:    flag.Float64("cost-rate", 0, "Per-flip transaction cost (default: 0.001)"),
		MetricsAddr: flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)"),
		Version:     flag.Bool("version", false, "Show version information"),
	}
}

// LoadEnvironment loads the env file if it exists. A missing file is only
// worth a warning because every setting has a flag or default.
func LoadEnvironment(envFile string) {
	if _, err := os.Stat(envFile); err != nil {
		return
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}

// ResolveRange turns the start/end flags into the fetch range. An empty
// start means the beginning of available history, an empty end means now.
func ResolveRange(flags *CommonFlags) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if *flags.Start != "" {
		start, err = time.Parse(dateLayout, *flags.Start)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -start %q: %w", *flags.Start, err)
		}
	}
	end = time.Now().UTC()
	if *flags.End != "" {
		end, err = time.Parse(dateLayout, *flags.End)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -end %q: %w", *flags.End, err)
		}
		// Include the end day itself.
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if !start.IsZero() && end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("-end %s precedes -start %s", *flags.End, *flags.Start)
	}
	return start, end, nil
}

// NewProvider builds the price provider the flags select, wrapped in an
// in-memory cache so repeated fetches of the same range are served locally.
func NewProvider(flags *CommonFlags) (data.PriceProvider, error) {
	switch strings.ToLower(*flags.Source) {
	case "csv":
		return data.NewCachedProvider(data.NewCSVProvider(*flags.DataRoot)), nil
	case "bybit":
		client := bybit.NewClient(bybit.Config{
			APIKey:    os.Getenv("BYBIT_API_KEY"),
			APISecret: os.Getenv("BYBIT_API_SECRET"),
			Testnet:   strings.EqualFold(os.Getenv("BYBIT_TESTNET"), "true"),
		})
		provider := bybit.NewProvider(client, os.Getenv("BYBIT_CATEGORY"), bybit.KlineInterval(*flags.Interval))
		return data.NewCachedProvider(provider), nil
	default:
		return nil, fmt.Errorf("unknown source %q (use csv or bybit)", *flags.Source)
	}
}

// StartMetricsServer exposes /metrics on addr when addr is non-empty. The
// server runs for the life of the process; command line runs are short, so
// scrapers mostly matter for long grid searches.
func StartMetricsServer(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("⚠️  Metrics server stopped: %v", err)
		}
	}()
}
