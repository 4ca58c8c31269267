package data

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haln-dev/quantlab/pkg/types"
)

func TestWriteCSV_RoundTrip(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested")
	base := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	candles := []types.OHLCV{
		{Timestamp: base, Open: 100, High: 101.5, Low: 99.25, Close: 100.75, Volume: 1200},
		{Timestamp: base.AddDate(0, 0, 1), Open: 100.75, High: 103, Low: 100.5, Close: 102.5, Volume: 900},
	}

	require.NoError(t, WriteCSV(filepath.Join(root, "BTCUSDT.csv"), candles))

	loaded, err := NewCSVProvider(root).Fetch(context.Background(), "btcusdt", time.Time{}, base.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Equal(t, candles, loaded)
}
