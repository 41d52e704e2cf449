// Package dto はportfolioフィーチャーのHTTPリクエスト/レスポンスDTOを定義します。
package dto

// HoldingRequest は保有銘柄の追加・更新・アップロードの共通リクエストボディです。
type HoldingRequest struct {
	Symbol      string  `json:"symbol" binding:"required"`
	Shares      float64 `json:"shares" binding:"required"`
	AverageCost float64 `json:"averageCost"`
}

// ReorderRequest は表示順の並べ替えリクエストです。
type ReorderRequest struct {
	OrderedSymbols []string `json:"orderedSymbols" binding:"required"`
}

// HoldingResponse は永続化済みの保有銘柄1件のレスポンスです。
type HoldingResponse struct {
	Symbol      string  `json:"symbol"`
	Shares      float64 `json:"shares"`
	AverageCost float64 `json:"averageCost"`
	Position    int     `json:"position"`
}

// ValuedHoldingResponse はライブQuoteで評価済みの保有銘柄1件のレスポンスです。
// Quote取得に失敗した行では派生フィールドがすべてnullになります。
type ValuedHoldingResponse struct {
	Symbol          string   `json:"symbol"`
	Shares          float64  `json:"shares"`
	AverageCost     float64  `json:"averageCost"`
	Name            string   `json:"name"`
	CurrentPrice    *float64 `json:"currentPrice"`
	Change          *float64 `json:"change"`
	ChangePercent   *float64 `json:"changePercent"`
	Value           *float64 `json:"value"`
	Gain            *float64 `json:"gain"`
	GainPercent     *float64 `json:"gainPercent"`
	Type            *string  `json:"type"`
	PreMarketPrice  *float64 `json:"preMarketPrice"`
	PostMarketPrice *float64 `json:"postMarketPrice"`
	MarketState     *string  `json:"marketState"`
}

// SummaryResponse はポートフォリオ全体の集計レスポンスです。
type SummaryResponse struct {
	TotalValue       float64 `json:"totalValue"`
	TotalGain        float64 `json:"totalGain"`
	TotalGainPercent float64 `json:"totalGainPercent"`
	DayChange        float64 `json:"dayChange"`
	DayChangePercent float64 `json:"dayChangePercent"`
}

// PortfolioResponse はGET /api/portfolioのレスポンスです。
type PortfolioResponse struct {
	Holdings []ValuedHoldingResponse `json:"holdings"`
	Summary  SummaryResponse         `json:"summary"`
}

// MessageResponse は処理結果のメッセージのみを返すレスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse はエラーレスポンスの共通形式です。
type ErrorResponse struct {
	Error string `json:"error"`
}
