package bybit

import (
	"context"
	"sort"
	"time"

	"github.com/haln-dev/quantlab/pkg/types"
)

// Provider adapts the kline client to the data.PriceProvider contract,
// paginating backwards through long ranges (the v5 API caps each page at
// 1000 candles, newest first).
type Provider struct {
	client   *Client
	category string
	interval KlineInterval
}

// NewProvider creates a Bybit-backed price provider. Empty category
// defaults to spot, empty interval to daily candles.
func NewProvider(client *Client, category string, interval KlineInterval) *Provider {
	if category == "" {
		category = "spot"
	}
	if interval == "" {
		interval = Interval1d
	}
	return &Provider{client: client, category: category, interval: interval}
}

// Name identifies the provider.
func (p *Provider) Name() string {
	return "Bybit"
}

// Fetch retrieves the symbol's candles inside [start, end] in chronological
// order. A range with no listed candles yields an empty series.
func (p *Provider) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]types.OHLCV, error) {
	var data []types.OHLCV

	cursor := end
	for cursor.After(start) {
		page, err := p.client.GetKlines(ctx, KlineParams{
			Category: p.category,
			Symbol:   symbol,
			Interval: p.interval,
			Start:    &start,
			End:      &cursor,
			Limit:    maxKlineLimit,
		})
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		oldest := page[len(page)-1].StartTime
		for _, kline := range page {
			data = append(data, types.OHLCV{
				Timestamp: kline.StartTime,
				Open:      kline.OpenPrice,
				High:      kline.HighPrice,
				Low:       kline.LowPrice,
				Close:     kline.ClosePrice,
				Volume:    kline.Volume,
			})
		}

		if len(page) < maxKlineLimit || !oldest.After(start) {
			break
		}
		cursor = oldest.Add(-time.Millisecond)
	}

	sort.Slice(data, func(i, j int) bool {
		return data[i].Timestamp.Before(data[j].Timestamp)
	})

	// Drop duplicate boundary candles from page overlap.
	deduped := data[:0]
	for i, candle := range data {
		if i > 0 && !candle.Timestamp.After(deduped[len(deduped)-1].Timestamp) {
			continue
		}
		deduped = append(deduped, candle)
	}
	return deduped, nil
}
