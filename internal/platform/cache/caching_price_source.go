// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio_backend/internal/feature/valuation/domain/entity"
	"portfolio_backend/internal/feature/valuation/usecase"
)

// CachingPriceSource decorates a PriceSource with Redis memoization.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying source. Keys are namespaced per call kind:
// current prices under "<ns>:current:<ticker>" and history under
// "<ns>:history:<ticker>:<lookback>". Errors and unavailable outcomes are
// never cached, so transient source outages self-heal on the next call.
type CachingPriceSource struct {
	inner      usecase.PriceSource
	rdb        *redis.Client
	currentTTL time.Duration
	historyTTL time.Duration
	namespace  string
}

// CachingPriceSource implements PriceSource (compile-time check).
var _ usecase.PriceSource = (*CachingPriceSource)(nil)

// NewCachingPriceSource decorates a PriceSource with Redis memoization.
// If currentTTL is 0 it defaults to 5 minutes, if historyTTL is 0 it defaults
// to 1 hour. If namespace is empty, it uses "prices".
func NewCachingPriceSource(rdb *redis.Client, currentTTL, historyTTL time.Duration, inner usecase.PriceSource, namespace string) *CachingPriceSource {
	if currentTTL <= 0 {
		currentTTL = 5 * time.Minute
	}
	if historyTTL <= 0 {
		historyTTL = time.Hour
	}
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingPriceSource{
		inner:      inner,
		rdb:        rdb,
		currentTTL: currentTTL,
		historyTTL: historyTTL,
		namespace:  namespace,
	}
}

// CurrentPrice retrieves the current price, checking cache first then falling
// back to the underlying source.
func (c *CachingPriceSource) CurrentPrice(ctx context.Context, ticker string) (float64, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.CurrentPrice(ctx, ticker)
	}

	key := fmt.Sprintf("%s:current:%s", c.namespace, ticker)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var price float64
		if err := json.Unmarshal(b, &price); err == nil {
			return price, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the source; failures are never cached
	price, err := c.inner.CurrentPrice(ctx, ticker)
	if err != nil {
		return 0, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(price); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.currentTTL).Err()
	}

	return price, nil
}

// History retrieves the daily closing price series, checking cache first then
// falling back to the underlying source.
func (c *CachingPriceSource) History(ctx context.Context, ticker string, lookbackDays int) ([]entity.ClosingPrice, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.History(ctx, ticker, lookbackDays)
	}

	key := fmt.Sprintf("%s:history:%s:%d", c.namespace, ticker, lookbackDays)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.ClosingPrice
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the source; failures are never cached
	out, err := c.inner.History(ctx, ticker, lookbackDays)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.historyTTL).Err()
	}

	return out, nil
}
