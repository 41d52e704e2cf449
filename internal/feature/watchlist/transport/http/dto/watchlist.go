// Package dto はwatchlistフィーチャーのHTTPレスポンスDTOを定義します。
package dto

// WatchlistItemResponse はウォッチ銘柄1件のレスポンスです。
// Quote取得に失敗した行はsymbol以外すべてnullになります。
type WatchlistItemResponse struct {
	Symbol         string   `json:"symbol"`
	Name           *string  `json:"name"`
	Price          *float64 `json:"price"`
	Change         *float64 `json:"change"`
	ChangePercent  *float64 `json:"changePercent"`
	PreMarketPrice *float64 `json:"preMarketPrice"`
	MarketState    *string  `json:"marketState"`
}

// MessageResponse は処理結果のメッセージのみを返すレスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse はエラーレスポンスの共通形式です。
type ErrorResponse struct {
	Error string `json:"error"`
}
