// Package dto はquoteフィーチャーのHTTPレスポンスDTOを定義します。
package dto

// QuoteResponse は1銘柄の正規化済みスナップショットのレスポンスです。
// preMarketPrice / postMarketPriceはセッション外では明示的な0、
// 取得不能な場合はnullになります。
type QuoteResponse struct {
	Symbol          string   `json:"symbol"`
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	Change          float64  `json:"change"`
	ChangePercent   float64  `json:"changePercent"`
	MarketCap       *float64 `json:"marketCap"`
	Volume          *int64   `json:"volume"`
	Type            string   `json:"type"`
	PreMarketPrice  *float64 `json:"preMarketPrice"`
	PostMarketPrice *float64 `json:"postMarketPrice"`
	MarketState     string   `json:"marketState"`
}

// NewsArticleResponse はニュース記事1件のレスポンスです。
// 取得できなかったフィールドはフォールバック値で埋められています。
type NewsArticleResponse struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Source    string `json:"source"`
	Published string `json:"published"`
}

// SearchResultResponse は銘柄検索の結果1件のレスポンスです。
type SearchResultResponse struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// ErrorResponse はエラーレスポンスの共通形式です。
type ErrorResponse struct {
	Error string `json:"error"`
}
