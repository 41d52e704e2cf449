// Package entity defines the domain models for the portfolio feature.
package entity

// Holding represents a user's recorded position in one symbol.
// (UserID, Symbol) is unique; Position is a dense zero-based ordering
// among the user's holdings and stays contiguous across deletes and
// reorders.
type Holding struct {
	ID          uint    `gorm:"primaryKey"`
	UserID      uint    `gorm:"not null;uniqueIndex:idx_holdings_user_symbol"`
	Symbol      string  `gorm:"size:20;not null;uniqueIndex:idx_holdings_user_symbol"`
	Shares      float64 `gorm:"not null"`           // share count, > 0
	AverageCost float64 `gorm:"not null"`           // average cost per share, >= 0
	Position    int     `gorm:"not null;default:0"` // display position, 0..N-1 per user
}

// ValuedHolding is a holding enriched with live quote data and derived
// valuation metrics. All pointer fields are nil when the symbol's quote
// could not be obtained; the holding itself is still present so one
// symbol's outage never empties the portfolio.
type ValuedHolding struct {
	Holding
	Name            string
	CurrentPrice    *float64
	Change          *float64
	ChangePercent   *float64
	Value           *float64
	Gain            *float64
	GainPercent     *float64
	AssetType       string
	MarketState     string
	PreMarketPrice  *float64
	PostMarketPrice *float64
}

// Summary はポートフォリオ全体の集計値です。
// 取得に失敗した銘柄は評価額・損益には含まれませんが、
// 取得原価（コストベース）には常に全保有が含まれます。
type Summary struct {
	TotalValue       float64
	TotalGain        float64
	TotalGainPercent float64
	DayChange        float64
	DayChangePercent float64
}
