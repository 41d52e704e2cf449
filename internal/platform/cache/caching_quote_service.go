// Package cache provides caching implementations for service interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"holdings_backend/internal/feature/quote/domain/entity"
)

// QuoteService abstracts retrieval of a normalized Quote.
type QuoteService interface {
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
}

// CachingQuoteService decorates a QuoteService with Redis caching.
// It implements the decorator pattern, transparently adding a TTL-bound
// cache without modifying the underlying service. Quotes are only ever
// served stale within the TTL window.
type CachingQuoteService struct {
	inner     QuoteService
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that CachingQuoteService implements QuoteService.
var _ QuoteService = (*CachingQuoteService)(nil)

// NewCachingQuoteService decorates a QuoteService with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "quotes".
func NewCachingQuoteService(rdb *redis.Client, ttl time.Duration, inner QuoteService, namespace string) *CachingQuoteService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "quotes"
	}
	return &CachingQuoteService{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetQuote retrieves a quote, checking cache first then falling back to the
// underlying service. Failures of the underlying service are never cached.
func (c *CachingQuoteService) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.GetQuote(ctx, symbol)
	}

	key := c.cacheKey(symbol)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Quote
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the live service
	out, err := c.inner.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Invalidate removes a symbol's cached quote. Best effort: a cache miss or
// Redis failure is not an error for the caller.
func (c *CachingQuoteService) Invalidate(ctx context.Context, symbol string) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.cacheKey(symbol)).Err()
}

// cacheKey generates the cache key for a symbol.
func (c *CachingQuoteService) cacheKey(symbol string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(symbol))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
