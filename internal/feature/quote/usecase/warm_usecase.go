package usecase

import (
	"context"
	"log/slog"

	"holdings_backend/internal/feature/quote/domain/entity"
	"holdings_backend/internal/shared/ratelimiter"
)

// QuoteService は正規化済みQuoteの取得を抽象化します。
// キャッシュデコレータを挟んだ実装が注入されることを想定しています。
type QuoteService interface {
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
}

// WarmUsecase は対象銘柄のQuoteを順に取得してキャッシュを温めるユースケースです。
type WarmUsecase struct {
	quotes      QuoteService
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewWarmUsecase は新しい WarmUsecase を作成します。
func NewWarmUsecase(quotes QuoteService, rateLimiter ratelimiter.RateLimiterInterface) *WarmUsecase {
	return &WarmUsecase{quotes: quotes, rateLimiter: rateLimiter}
}

// WarmAll は指定された全銘柄のQuoteを取得します。プロバイダのレートリミットを
// 考慮してリクエスト間に適切な待機時間を設け、1銘柄の失敗はログに出力して
// 処理を続行します。
func (wu *WarmUsecase) WarmAll(ctx context.Context, symbols []string) {
	for _, s := range symbols {
		wu.rateLimiter.WaitIfNeeded()
		if _, err := wu.quotes.GetQuote(ctx, s); err != nil {
			// 1つの銘柄でエラーが発生しても処理を止めない
			slog.Error("failed to warm quote", "symbol", s, "error", err)
			continue
		}
	}
}
