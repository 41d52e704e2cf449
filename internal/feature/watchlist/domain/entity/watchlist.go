// Package entity defines the domain models for the watchlist feature.
package entity

// WatchlistEntry はユーザーがウォッチしている銘柄1件です。
// (UserID, Symbol) は一意で、表示順の概念はありません。
type WatchlistEntry struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_watchlist_user_symbol"`
	Symbol string `gorm:"size:20;not null;uniqueIndex:idx_watchlist_user_symbol"`
}

// TableName はGORMのデフォルト複数形（watchlist_entries）ではなく
// watchlistテーブルを使います。
func (WatchlistEntry) TableName() string { return "watchlist" }

// WatchlistItem はウォッチ銘柄をライブQuoteで解決した表示用の行です。
// Quote取得に失敗した場合はSymbol以外すべてnilになります。
type WatchlistItem struct {
	Symbol         string
	Name           *string
	Price          *float64
	Change         *float64
	ChangePercent  *float64
	PreMarketPrice *float64
	MarketState    *string
}
