package usecase

import (
	"context"
	"sync"

	"github.com/NasaVasa/stocky/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// priceCache deduplicates price lookups within a single evaluation pass.
// It is constructed at the start of a pass and discarded with it, so a
// cached price never leaks into the next cycle. Failures are cached too:
// one failed lookup settles every alert on that ticker for the pass.
type priceCache struct {
	source domain.PriceSource
	flight singleflight.Group

	mu     sync.RWMutex
	prices map[string]priceResult
}

type priceResult struct {
	price decimal.Decimal
	err   error
}

func newPriceCache(source domain.PriceSource) *priceCache {
	return &priceCache{source: source, prices: make(map[string]priceResult)}
}

// Get returns the pass-local price for ticker. Concurrent callers for an
// uncached ticker collapse to a single PriceSource call.
func (c *priceCache) Get(ctx context.Context, ticker string) (decimal.Decimal, error) {
	c.mu.RLock()
	cached, ok := c.prices[ticker]
	c.mu.RUnlock()
	if ok {
		return cached.price, cached.err
	}

	value, _, _ := c.flight.Do(ticker, func() (interface{}, error) {
		price, err := c.source.CurrentPrice(ctx, ticker)
		result := priceResult{price: price, err: err}
		c.mu.Lock()
		c.prices[ticker] = result
		c.mu.Unlock()
		return result, nil
	})

	result := value.(priceResult)
	return result.price, result.err
}
