// Package di provides dependency injection factories for creating application components.
package di

import (
	"holdings_backend/internal/platform/externalapi/yahoo"
	infrahttp "holdings_backend/internal/platform/http"
)

// NewMarket creates a fully configured YahooMarket with HTTP client.
func NewMarket() *yahoo.YahooMarket {
	cfg := yahoo.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return yahoo.NewYahooMarket(cfg, httpClient)
}
