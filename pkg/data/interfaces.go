// Package data supplies historical price series to the quantitative
// engines. Providers are external collaborators: the engines only ever see
// ordered candle slices and treat an empty result as a defined no-data
// condition.
package data

import (
	"context"
	"time"

	"github.com/haln-dev/quantlab/pkg/types"
)

// PriceProvider fetches the historical price series for a symbol over a
// date range, ordered ascending by timestamp with no duplicates. An empty
// slice with a nil error means no data exists for the range.
type PriceProvider interface {
	Fetch(ctx context.Context, symbol string, start, end time.Time) ([]types.OHLCV, error)

	// Name identifies the provider in logs and reports.
	Name() string
}

// Cache stores fetched series keyed by symbol and range.
type Cache interface {
	Get(key string) ([]types.OHLCV, bool)
	Set(key string, data []types.OHLCV)
	Clear()
	Size() int
}

// CSVColumnMapping defines the column layout of a candle CSV file.
type CSVColumnMapping struct {
	TimestampCol int
	OpenCol      int
	HighCol      int
	LowCol       int
	CloseCol     int
	VolumeCol    int
	MinColumns   int
	DateFormat   string
}

// DefaultCSVFormat matches timestamp,open,high,low,close,volume with a
// header row.
var DefaultCSVFormat = CSVColumnMapping{
	TimestampCol: 0,
	OpenCol:      1,
	HighCol:      2,
	LowCol:       3,
	CloseCol:     4,
	VolumeCol:    5,
	MinColumns:   6,
	DateFormat:   "2006-01-02 15:04:05",
}
