// Package entity defines the domain models for the history feature.
package entity

// HistoricalPoint is one normalized row of a historical price series.
// Change and ChangePercent are derived against the previous point in the
// series and are nil for the first point.
type HistoricalPoint struct {
	Date          string // "2006-01-02" for daily and coarser, "2006-01-02 15:04:05" for intraday (UTC)
	Open          float64
	High          float64
	Low           float64
	Close         float64
	Volume        int64
	Change        *float64
	ChangePercent *float64
}

// PeriodAdjustment はリクエストされた期間がインターバルの上限を超えて
// 置き換えられたことを記録します。調整が起きたときだけレスポンスに付与されます。
type PeriodAdjustment struct {
	Requested string // 呼び出し元が指定した期間
	Effective string // 実際に使用した期間
	Reason    string // 人間可読の調整理由
}

// SMASeries maps a window key (e.g. "sma20") to a per-point value slice the
// same length as the source series; nil entries mean insufficient data.
type SMASeries map[string][]*float64

// Series は1銘柄の履歴レスポンス全体です。
type Series struct {
	Symbol     string
	Points     []HistoricalPoint
	Period     string // 実効期間
	Interval   string
	Adjustment *PeriodAdjustment // 調整が起きたときのみ非nil
	SMA        SMASeries         // 要求されたときのみ非nil
}
