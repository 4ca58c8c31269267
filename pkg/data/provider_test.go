package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haln-dev/quantlab/pkg/types"
)

const sampleCSV = `timestamp,open,high,low,close,volume
2023-01-02 00:00:00,100,102,99,101,5000
2023-01-03 00:00:00,101,103,100,102,6000
not-a-date,101,103,100,102,6000
2023-01-04 00:00:00,102,bad,100,101,4000
2023-01-05 00:00:00,102,104,101,103,7000
2023-01-06 00:00:00,103,105,102,104,8000
`

func writeSampleFile(t *testing.T, symbol string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, symbol+".csv"), []byte(sampleCSV), 0o644))
	return dir
}

func date(day int) time.Time {
	return time.Date(2023, 1, day, 0, 0, 0, 0, time.UTC)
}

func TestCSVProvider_FetchSkipsMalformedRows(t *testing.T) {
	provider := NewCSVProvider(writeSampleFile(t, "AAPL"))

	data, err := provider.Fetch(context.Background(), "AAPL", date(1), date(31))
	require.NoError(t, err)

	// Two malformed rows dropped, four good candles kept in order.
	require.Len(t, data, 4)
	assert.Equal(t, 101.0, data[0].Close)
	assert.Equal(t, 104.0, data[3].Close)
	for i := 1; i < len(data); i++ {
		assert.True(t, data[i].Timestamp.After(data[i-1].Timestamp))
	}
}

func TestCSVProvider_FetchFiltersDateRange(t *testing.T) {
	provider := NewCSVProvider(writeSampleFile(t, "AAPL"))

	data, err := provider.Fetch(context.Background(), "AAPL", date(3), date(5))
	require.NoError(t, err)

	require.Len(t, data, 2)
	assert.Equal(t, 102.0, data[0].Close)
	assert.Equal(t, 103.0, data[1].Close)
}

func TestCSVProvider_EmptyRangeIsNoData(t *testing.T) {
	provider := NewCSVProvider(writeSampleFile(t, "AAPL"))

	data, err := provider.Fetch(context.Background(), "AAPL", date(20), date(25))
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestCSVProvider_MissingFile(t *testing.T) {
	provider := NewCSVProvider(t.TempDir())

	_, err := provider.Fetch(context.Background(), "MISSING", date(1), date(31))
	assert.Error(t, err)
}

func TestCSVProvider_LowercaseSymbolResolves(t *testing.T) {
	provider := NewCSVProvider(writeSampleFile(t, "AAPL"))

	data, err := provider.Fetch(context.Background(), "aapl", date(1), date(31))
	require.NoError(t, err)
	assert.Len(t, data, 4)
}

// countingProvider records how many times the source was hit.
type countingProvider struct {
	calls int
	data  []types.OHLCV
}

func (p *countingProvider) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]types.OHLCV, error) {
	p.calls++
	return p.data, nil
}

func (p *countingProvider) Name() string { return "counting" }

func TestCachedProvider_HitsSourceOnce(t *testing.T) {
	source := &countingProvider{data: []types.OHLCV{
		{Close: 100, Timestamp: date(2)},
		{Close: 101, Timestamp: date(3)},
	}}
	provider := NewCachedProvider(source)

	first, err := provider.Fetch(context.Background(), "AAPL", date(1), date(31))
	require.NoError(t, err)
	second, err := provider.Fetch(context.Background(), "AAPL", date(1), date(31))
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls)
	assert.Equal(t, first, second)

	// A different range is a different cache entry.
	_, err = provider.Fetch(context.Background(), "AAPL", date(1), date(15))
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

func TestCachedProvider_CopiesAreIsolated(t *testing.T) {
	source := &countingProvider{data: []types.OHLCV{{Close: 100, Timestamp: date(2)}}}
	provider := NewCachedProvider(source)

	first, err := provider.Fetch(context.Background(), "AAPL", date(1), date(31))
	require.NoError(t, err)
	first[0].Close = 0

	second, err := provider.Fetch(context.Background(), "AAPL", date(1), date(31))
	require.NoError(t, err)
	assert.Equal(t, 100.0, second[0].Close)
}

func TestMemoryCache_Basics(t *testing.T) {
	cache := NewMemoryCache()
	assert.Equal(t, 0, cache.Size())

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	cache.Set("key", []types.OHLCV{{Close: 1}})
	assert.Equal(t, 1, cache.Size())

	data, ok := cache.Get("key")
	assert.True(t, ok)
	assert.Len(t, data, 1)

	cache.Clear()
	assert.Equal(t, 0, cache.Size())
}
