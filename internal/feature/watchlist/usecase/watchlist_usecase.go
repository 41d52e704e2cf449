// Package usecase はwatchlistフィーチャーのビジネスロジックを提供します。
package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	quoteentity "holdings_backend/internal/feature/quote/domain/entity"
	quoteuc "holdings_backend/internal/feature/quote/usecase"
	"holdings_backend/internal/feature/watchlist/domain/entity"
)

const (
	// detailWorkers はウォッチリスト解決時のQuote取得の並列数です。
	detailWorkers = 4
	// quoteTimeout は1銘柄あたりのQuote取得に許容する時間です。
	quoteTimeout = 10 * time.Second
)

// WatchlistRepository はウォッチリストの永続化層を抽象化します。
// インターフェースはコンシューマー（usecase）側で定義します。
type WatchlistRepository interface {
	// ListSymbols はユーザーのウォッチ銘柄を返します。
	ListSymbols(ctx context.Context, userID uint) ([]string, error)
	// Insert はウォッチ銘柄を追加します。既にある場合は ErrAlreadyWatched を返します。
	Insert(ctx context.Context, userID uint, symbol string) error
	// Delete はウォッチ銘柄を削除します。存在しない場合は ErrNotWatched を返します。
	Delete(ctx context.Context, userID uint, symbol string) error
	// DistinctSymbols は全ユーザーのウォッチ銘柄の重複を除いた一覧を返します。
	DistinctSymbols(ctx context.Context) ([]string, error)
}

// QuoteService は正規化済みQuoteの取得を抽象化します。
type QuoteService interface {
	GetQuote(ctx context.Context, symbol string) (*quoteentity.Quote, error)
}

// watchlistUsecase はウォッチリストの追加・削除・解決を実装します。
type watchlistUsecase struct {
	watchlist WatchlistRepository
	quotes    QuoteService
}

// NewWatchlistUsecase はwatchlistUsecaseの新しいインスタンスを生成します。
func NewWatchlistUsecase(watchlist WatchlistRepository, quotes QuoteService) *watchlistUsecase {
	return &watchlistUsecase{watchlist: watchlist, quotes: quotes}
}

// Add は銘柄をウォッチリストに追加します。追加済みの銘柄は
// ErrAlreadyWatched を返しますが、状態としては成功時と同じです。
// 戻り値は正規化済みの銘柄です。
func (wu *watchlistUsecase) Add(ctx context.Context, userID uint, symbol string) (string, error) {
	normalized := quoteuc.NormalizeSymbol(symbol)
	if !validSymbol(normalized) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	if err := wu.watchlist.Insert(ctx, userID, normalized); err != nil {
		return normalized, err
	}
	return normalized, nil
}

// Remove は銘柄をウォッチリストから削除します。
// 戻り値は正規化済みの銘柄です。
func (wu *watchlistUsecase) Remove(ctx context.Context, userID uint, symbol string) (string, error) {
	normalized := quoteuc.NormalizeSymbol(symbol)
	if err := wu.watchlist.Delete(ctx, userID, normalized); err != nil {
		return normalized, err
	}
	return normalized, nil
}

// GetWatchlistDetails はウォッチ銘柄をライブQuoteで解決します。
// 1銘柄の取得失敗はその行をSymbolのみにするだけで、レスポンス全体を
// 失敗させることはありません。
func (wu *watchlistUsecase) GetWatchlistDetails(ctx context.Context, userID uint) ([]entity.WatchlistItem, error) {
	symbols, err := wu.watchlist.ListSymbols(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}

	items := make([]entity.WatchlistItem, len(symbols))
	sem := make(chan struct{}, detailWorkers)
	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			items[i] = wu.resolveItem(ctx, symbol)
		}(i, symbol)
	}
	wg.Wait()

	return items, nil
}

// resolveItem は1ウォッチ銘柄をQuoteで解決します。
func (wu *watchlistUsecase) resolveItem(ctx context.Context, symbol string) entity.WatchlistItem {
	item := entity.WatchlistItem{Symbol: symbol}

	qctx, cancel := context.WithTimeout(ctx, quoteTimeout)
	defer cancel()

	q, err := wu.quotes.GetQuote(qctx, symbol)
	if err != nil {
		return item
	}

	state := string(q.MarketState)
	item.Name = &q.Name
	item.Price = &q.Price
	item.Change = &q.Change
	item.ChangePercent = &q.ChangePercent
	item.PreMarketPrice = q.PreMarketPrice
	item.MarketState = &state
	return item
}

// validSymbol はティッカーとして妥当な文字列かを判定します。
// 英数字に加えて指数・通貨ペア・種類株で使われる記号を許容します
// （例: BRK.B、BTC-USD、^GSPC）。
func validSymbol(symbol string) bool {
	if symbol == "" || len(symbol) > 20 {
		return false
	}
	for _, r := range symbol {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == '^' || r == '=':
		default:
			return false
		}
	}
	return true
}
