package data

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haln-dev/quantlab/pkg/types"
)

// MemoryCache implements Cache with an in-memory map. Both Get and Set copy
// the series so cached data can never be mutated by callers.
type MemoryCache struct {
	cache map[string][]types.OHLCV
	mutex sync.RWMutex
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{cache: make(map[string][]types.OHLCV)}
}

// Get retrieves a copy of the cached series if present.
func (c *MemoryCache) Get(key string) ([]types.OHLCV, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	data, exists := c.cache[key]
	if !exists {
		return nil, false
	}
	result := make([]types.OHLCV, len(data))
	copy(result, data)
	return result, true
}

// Set stores a copy of the series.
func (c *MemoryCache) Set(key string, data []types.OHLCV) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	cached := make([]types.OHLCV, len(data))
	copy(cached, data)
	c.cache[key] = cached
}

// Clear removes all cached series.
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.cache = make(map[string][]types.OHLCV)
}

// Size returns the number of cached entries.
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.cache)
}

// CachedProvider wraps another PriceProvider with a cache so repeated
// fetches of the same symbol and range hit the source only once.
type CachedProvider struct {
	provider PriceProvider
	cache    Cache
}

// NewCachedProvider wraps a provider with an in-memory cache.
func NewCachedProvider(provider PriceProvider) *CachedProvider {
	return &CachedProvider{provider: provider, cache: NewMemoryCache()}
}

// Name identifies the provider.
func (p *CachedProvider) Name() string {
	return fmt.Sprintf("%s (cached)", p.provider.Name())
}

// Fetch serves from cache when possible, falling through to the wrapped
// provider otherwise. Empty no-data results are cached too.
func (p *CachedProvider) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]types.OHLCV, error) {
	key := cacheKey(symbol, start, end)
	if data, ok := p.cache.Get(key); ok {
		return data, nil
	}

	data, err := p.provider.Fetch(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, data)
	return data, nil
}

func cacheKey(symbol string, start, end time.Time) string {
	return fmt.Sprintf("%s|%d|%d", symbol, start.Unix(), end.Unix())
}
