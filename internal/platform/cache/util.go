package cache

import (
	"os"
	"time"
)

// DefaultQuoteTTL is the default TTL for cached quotes.
const DefaultQuoteTTL = 5 * time.Minute

// QuoteTTLFromEnv reads the quote cache TTL from the QUOTE_CACHE_TTL
// environment variable. Unset, unparseable, or non-positive values fall
// back to the default.
func QuoteTTLFromEnv() time.Duration {
	raw := os.Getenv("QUOTE_CACHE_TTL")
	if raw == "" {
		return DefaultQuoteTTL
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return DefaultQuoteTTL
	}
	return d
}
