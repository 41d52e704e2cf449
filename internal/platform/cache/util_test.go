package cache

import (
	"testing"
	"time"
)

// TestQuoteTTLFromEnv は環境変数からのTTL解決を検証します。
func TestQuoteTTLFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
	}{
		{"unset uses default", "", DefaultQuoteTTL},
		{"valid duration", "90s", 90 * time.Second},
		{"minutes", "10m", 10 * time.Minute},
		{"garbage uses default", "not-a-duration", DefaultQuoteTTL},
		{"non-positive uses default", "-5m", DefaultQuoteTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("QUOTE_CACHE_TTL", tt.value)

			if got := QuoteTTLFromEnv(); got != tt.expected {
				t.Errorf("QuoteTTLFromEnv() = %v, want %v", got, tt.expected)
			}
		})
	}
}
