package di

import (
	"github.com/redis/go-redis/v9"

	"holdings_backend/internal/platform/cache"
)

// NewQuoteService wraps the quote usecase with the Redis caching decorator.
// With a nil client the decorator passes every call through to the provider,
// so the application runs without a cache when Redis is unavailable.
func NewQuoteService(rdb *redis.Client, inner cache.QuoteService) *cache.CachingQuoteService {
	return cache.NewCachingQuoteService(rdb, cache.QuoteTTLFromEnv(), inner, "quotes")
}
