// Package entity は相場情報機能のドメインモデルを定義します。
package entity

// AssetType は銘柄を閉じた資産種別の集合へ分類します。
type AssetType string

const (
	AssetTypeStock  AssetType = "stock"
	AssetTypeETF    AssetType = "etf"
	AssetTypeCrypto AssetType = "crypto"
)

// MarketState は取引所のセッション状態を表します。
// プロバイダのメタデータに由来し、未知の値はそのまま保持されます。
type MarketState string

const (
	MarketStateRegular MarketState = "REGULAR"
	MarketStatePre     MarketState = "PRE"
	MarketStatePost    MarketState = "POST"
	MarketStateClosed  MarketState = "CLOSED"
)

// Quote は1銘柄の正規化済みスナップショットです。
// リクエストごとに再計算される一時的な派生ビューであり、永続化されません。
//
// PreMarketPrice / PostMarketPrice はポインタで「欠損」と「明示的なゼロ」を
// 区別します。セッションがPRE/POST以外のときは意図的なゼロ値が設定されます
// （レガシー互換の規約）。
type Quote struct {
	Symbol          string      // 大文字正規化済みのティッカー
	Name            string      // 表示名（shortName → longName → symbol の順で解決）
	Price           float64     // 現在値
	Change          float64     // 前日終値との差分
	ChangePercent   float64     // 変化率（前日終値が0または不明なら0）
	MarketCap       *float64    // 時価総額（取得できない場合はnil）
	Volume          *int64      // 出来高（取得できない場合はnil）
	AssetType       AssetType   // stock / etf / crypto
	MarketState     MarketState // REGULAR / PRE / POST / CLOSED / その他
	PreMarketPrice  *float64    // PREセッション時のみ意味を持つ
	PostMarketPrice *float64    // POSTセッション時のみ意味を持つ
}
