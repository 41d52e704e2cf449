// Package yahoo はYahoo Financeの公開APIのクライアントを提供します。
package yahoo

import (
	"os"
	"time"
)

// DefaultBaseURL はYahoo Finance APIのデフォルトのベースURLです。
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Config はYahoo Finance APIクライアントの設定を保持します。
type Config struct {
	BaseURL string        // APIのベースURL
	Timeout time.Duration // HTTPリクエストタイムアウト
}

// LoadConfig は環境変数からYahoo Financeの設定を読み込みます。
func LoadConfig() Config {
	base := os.Getenv("YAHOO_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}
