package entity

import "time"

// QuoteMetadata はマーケットデータプロバイダが返す銘柄の記述スナップショットです。
// ポインタフィールドで「レスポンスにフィールドが無い」と明示的なゼロを区別し、
// フォールバックの連鎖を1箇所で決定的に適用できるようにします。
type QuoteMetadata struct {
	ShortName          string
	LongName           string
	QuoteType          string // プロバイダの生の種別トークン（例: "EQUITY", "ETF", "CRYPTOCURRENCY"）
	MarketState        string // 生のセッショントークン（例: "REGULAR", "PRE", "POST", "CLOSED"）
	CurrentPrice       *float64
	RegularMarketPrice *float64
	PreviousClose      *float64
	PreMarketPrice     *float64
	MarketCap          *float64
	Volume             *int64
}

// Bar は1本分のOHLCVバーを表します。
type Bar struct {
	Time   time.Time // バー期間の開始時刻
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// NewsItem はプロバイダから返される生のニュースエントリです。
// どのフィールドも空の可能性があり、正規化はユースケース側で行います。
type NewsItem struct {
	Title     string
	Link      string
	Source    string
	Published string
}

// NewsArticle はニュース記事1件を表します。
// プロバイダ側で欠けていたフィールドは定義済みの代替値で埋められます。
type NewsArticle struct {
	Title     string // 欠損時は "No title available"
	Link      string // 欠損時は "#"
	Source    string // 欠損時は "Unknown source"
	Published string // ISO 8601。欠損時は空文字列
}

// SearchResult は銘柄検索の1件分の結果です。
type SearchResult struct {
	Symbol string
	Name   string
}
