// Package dto はhistoryフィーチャーのHTTPレスポンスDTOを定義します。
package dto

// HistoricalPointResponse は時系列の1点分のレスポンスです。
// change / changePercentは系列の先頭ではnullになります。
type HistoricalPointResponse struct {
	Date          string   `json:"date"`
	Open          float64  `json:"open"`
	High          float64  `json:"high"`
	Low           float64  `json:"low"`
	Close         float64  `json:"close"`
	Volume        int64    `json:"volume"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"changePercent"`
}

// HistoryResponse はGET /api/history/:symbolのレスポンスです。
// 期間が調整された場合のみadjusted以下のフィールドが現れます。
type HistoryResponse struct {
	Symbol          string                    `json:"symbol"`
	History         []HistoricalPointResponse `json:"history"`
	Period          string                    `json:"period"`
	Interval        string                    `json:"interval"`
	Adjusted        *bool                     `json:"adjusted,omitempty"`
	RequestedPeriod string                    `json:"requestedPeriod,omitempty"`
	ActualPeriod    string                    `json:"actualPeriod,omitempty"`
	Message         string                    `json:"message,omitempty"`
	SMA             map[string][]*float64     `json:"sma,omitempty"`
}

// ErrorResponse はエラーレスポンスの共通形式です。
type ErrorResponse struct {
	Error string `json:"error"`
}
