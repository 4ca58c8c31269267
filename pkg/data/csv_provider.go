package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/haln-dev/quantlab/pkg/types"
)

// CSVProvider loads candle series from per-symbol CSV files under a root
// directory (<root>/<SYMBOL>.csv).
type CSVProvider struct {
	root   string
	format CSVColumnMapping
}

// NewCSVProvider creates a CSV provider with the default column layout.
func NewCSVProvider(root string) *CSVProvider {
	return &CSVProvider{root: root, format: DefaultCSVFormat}
}

// NewCSVProviderWithFormat creates a CSV provider with a custom layout.
func NewCSVProviderWithFormat(root string, format CSVColumnMapping) *CSVProvider {
	return &CSVProvider{root: root, format: format}
}

// Name identifies the provider.
func (p *CSVProvider) Name() string {
	return "CSV Provider"
}

// Fetch loads the symbol's file and returns the candles inside [start, end].
// Malformed rows are skipped with a warning; a file with no rows in range
// yields an empty series, not an error.
func (p *CSVProvider) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]types.OHLCV, error) {
	path := filepath.Join(p.root, strings.ToUpper(symbol)+".csv")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening data file for %s: %w", symbol, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("reading CSV header for %s: %w", symbol, err)
	}

	var data []types.OHLCV
	lineNum := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("reading CSV for %s at line %d: %w", symbol, lineNum, err)
		}
		lineNum++

		candle, ok := p.parseRecord(record, lineNum)
		if !ok {
			continue
		}
		if candle.Timestamp.Before(start) || candle.Timestamp.After(end) {
			continue
		}

		if len(data) > 0 && !candle.Timestamp.After(data[len(data)-1].Timestamp) {
			return nil, fmt.Errorf("data for %s is not strictly chronological at line %d", symbol, lineNum)
		}
		data = append(data, candle)
	}

	return data, nil
}

// parseRecord converts one CSV row, reporting false for rows to skip.
func (p *CSVProvider) parseRecord(record []string, lineNum int) (types.OHLCV, bool) {
	if len(record) < p.format.MinColumns {
		log.Printf("insufficient columns at line %d (expected %d, got %d), skipping", lineNum, p.format.MinColumns, len(record))
		return types.OHLCV{}, false
	}

	timestamp, err := time.Parse(p.format.DateFormat, record[p.format.TimestampCol])
	if err != nil {
		log.Printf("invalid timestamp %q at line %d, skipping: %v", record[p.format.TimestampCol], lineNum, err)
		return types.OHLCV{}, false
	}

	fields := map[string]int{
		"open":   p.format.OpenCol,
		"high":   p.format.HighCol,
		"low":    p.format.LowCol,
		"close":  p.format.CloseCol,
		"volume": p.format.VolumeCol,
	}
	values := make(map[string]float64, len(fields))
	for name, col := range fields {
		value, err := strconv.ParseFloat(record[col], 64)
		if err != nil {
			log.Printf("invalid %s %q at line %d, skipping: %v", name, record[col], lineNum, err)
			return types.OHLCV{}, false
		}
		values[name] = value
	}

	candle := types.OHLCV{
		Timestamp: timestamp,
		Open:      values["open"],
		High:      values["high"],
		Low:       values["low"],
		Close:     values["close"],
		Volume:    values["volume"],
	}

	if candle.Open <= 0 || candle.High <= 0 || candle.Low <= 0 || candle.Close <= 0 {
		log.Printf("non-positive price at line %d, skipping", lineNum)
		return types.OHLCV{}, false
	}
	if candle.High < candle.Low || candle.High < candle.Open || candle.High < candle.Close {
		log.Printf("high below other prices at line %d, skipping", lineNum)
		return types.OHLCV{}, false
	}
	if candle.Low > candle.Open || candle.Low > candle.Close {
		log.Printf("low above other prices at line %d, skipping", lineNum)
		return types.OHLCV{}, false
	}

	return candle, true
}
