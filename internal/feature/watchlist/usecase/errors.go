package usecase

import "errors"

// watchlistフィーチャーのsentinelエラーです。
// handlerはerrors.IsでHTTPステータスに変換します。
var (
	// ErrInvalidSymbol はティッカーとして使えない文字列が指定されたことを表します。
	ErrInvalidSymbol = errors.New("invalid symbol format")
	// ErrAlreadyWatched は既にウォッチ済みの銘柄の追加を表します。
	// 呼び出し側は冪等な成功として扱えます。
	ErrAlreadyWatched = errors.New("symbol is already in watchlist")
	// ErrNotWatched はウォッチしていない銘柄の削除を表します。
	ErrNotWatched = errors.New("symbol not found in watchlist")
)
