package usecase

import (
	"context"
	"fmt"
	"strings"

	"holdings_backend/internal/feature/quote/domain/entity"
)

const (
	// recentLookbackDays は現在値の算出に使う直近バーの取得日数です。
	recentLookbackDays = 2
)

// MarketRepository は外部マーケットデータプロバイダを抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/externalapi）ではなく
// コンシューマー（usecase）が定義します。
//
// すべてのメソッドは失敗したり部分的・空のデータを返したりする可能性があり、
// 呼び出し側はそのいずれも回復可能な結果として扱います。
type MarketRepository interface {
	// FetchQuoteMetadata は銘柄の記述的メタデータを取得します。
	FetchQuoteMetadata(ctx context.Context, symbol string) (*entity.QuoteMetadata, error)
	// FetchRecentBars は直近lookbackDays日分の日足バーを古い順で返します。
	FetchRecentBars(ctx context.Context, symbol string, lookbackDays int) ([]entity.Bar, error)
	// FetchLatestPrepostBar は時間外取引を含む直近の分足バーを返します。
	FetchLatestPrepostBar(ctx context.Context, symbol string) (*entity.Bar, error)
	// FetchNews は銘柄に関するニュース項目を新しい順で返します。
	FetchNews(ctx context.Context, symbol string) ([]entity.NewsItem, error)
}

// quoteUsecase は生のプロバイダデータから正規化済みQuoteを導出するコアロジックです。
type quoteUsecase struct {
	market MarketRepository
}

// NewQuoteUsecase はquoteUsecaseの新しいインスタンスを生成します。
func NewQuoteUsecase(market MarketRepository) *quoteUsecase {
	return &quoteUsecase{market: market}
}

// NormalizeSymbol はティッカーを正準形（前後空白除去＋大文字）へ変換します。
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// GetQuote は銘柄の正規化済みスナップショットを構築します。
//
// 現在値は直近2営業日のバーから決定し、バーが空の場合はメタデータの
// currentPrice → regularMarketPrice → previousClose の順でフォールバック
// します。どちらからも価格が得られない場合は ErrDataUnavailable を返します。
//
// セッション状態がPREのときはメタデータのpreMarketPriceを、POSTのときは
// 時間外を含む直近分足の終値をpost価格として公開します。それ以外の
// セッションではpre/postともに明示的なゼロ値（未適用の印）になります。
func (q *quoteUsecase) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrDataUnavailable)
	}

	bars, barsErr := q.market.FetchRecentBars(ctx, symbol, recentLookbackDays)
	meta, metaErr := q.market.FetchQuoteMetadata(ctx, symbol)
	if metaErr != nil {
		// メタデータ欠損は単独では致命的ではない（バーがあれば続行できる）
		meta = nil
	}

	var price, prevClose float64
	switch {
	case barsErr == nil && len(bars) > 0:
		price = bars[len(bars)-1].Close
		if len(bars) > 1 {
			prevClose = bars[0].Close
		} else {
			// 1本しかない場合は変化量を0とみなす
			prevClose = price
		}
	case meta != nil:
		p := firstPresent(meta.CurrentPrice, meta.RegularMarketPrice, meta.PreviousClose)
		if p == nil {
			return nil, fmt.Errorf("%w: %s", ErrDataUnavailable, symbol)
		}
		price = *p
		if meta.PreviousClose != nil {
			prevClose = *meta.PreviousClose
		} else {
			prevClose = price
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrDataUnavailable, symbol)
	}

	change := price - prevClose
	changePercent := 0.0
	if prevClose != 0 {
		changePercent = change / prevClose * 100
	}

	quote := &entity.Quote{
		Symbol:        symbol,
		Name:          resolveName(symbol, meta),
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		AssetType:     ClassifyAsset(symbol, meta),
	}
	if meta != nil {
		quote.MarketCap = meta.MarketCap
		quote.Volume = meta.Volume
		quote.MarketState = entity.MarketState(meta.MarketState)
	}

	switch quote.MarketState {
	case entity.MarketStatePre:
		// プロバイダ側に値が無いこともある（その場合はnilのまま）
		quote.PreMarketPrice = meta.PreMarketPrice
	case entity.MarketStatePost:
		if bar, err := q.market.FetchLatestPrepostBar(ctx, symbol); err == nil && bar != nil {
			c := bar.Close
			quote.PostMarketPrice = &c
		}
	default:
		// 「セッション対象外」を表す意図的なゼロ（欠損とは区別される）
		zero := 0.0
		quote.PreMarketPrice = &zero
		zero2 := 0.0
		quote.PostMarketPrice = &zero2
	}

	return quote, nil
}

// resolveName は表示名を shortName → longName → symbol の優先順で解決します。
func resolveName(symbol string, meta *entity.QuoteMetadata) string {
	if meta != nil {
		if meta.ShortName != "" {
			return meta.ShortName
		}
		if meta.LongName != "" {
			return meta.LongName
		}
	}
	return symbol
}

// firstPresent は最初の非nil値を返します。すべてnilならnilを返します。
func firstPresent(vs ...*float64) *float64 {
	for _, v := range vs {
		if v != nil {
			return v
		}
	}
	return nil
}
