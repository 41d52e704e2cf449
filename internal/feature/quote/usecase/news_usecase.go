package usecase

import (
	"context"
	"log/slog"

	"holdings_backend/internal/feature/quote/domain/entity"
)

// Fallback values substituted for absent news fields.
const (
	fallbackNewsTitle  = "No title available"
	fallbackNewsLink   = "#"
	fallbackNewsSource = "Unknown source"
)

// newsUsecase はニュース取得と銘柄検索のロジックです。
// 検索はQuoteの解決を経由するため、キャッシュデコレータを挟んだ
// QuoteServiceを注入します。
type newsUsecase struct {
	market MarketRepository
	quotes QuoteService
}

// NewNewsUsecase はnewsUsecaseの新しいインスタンスを生成します。
func NewNewsUsecase(market MarketRepository, quotes QuoteService) *newsUsecase {
	return &newsUsecase{market: market, quotes: quotes}
}

// GetNews は銘柄のニュース記事を返します。
// プロバイダの失敗やフィールド欠損は回復可能として扱い、
// 個々の欠損フィールドは定義済みの代替値で埋め、取得自体の失敗は
// 空のリストに縮退させます。この操作がエラーを返すことはありません。
func (n *newsUsecase) GetNews(ctx context.Context, symbol string) []entity.NewsArticle {
	symbol = NormalizeSymbol(symbol)

	items, err := n.market.FetchNews(ctx, symbol)
	if err != nil {
		slog.Warn("failed to fetch news", "symbol", symbol, "error", err)
		return []entity.NewsArticle{}
	}

	articles := make([]entity.NewsArticle, 0, len(items))
	for _, it := range items {
		a := entity.NewsArticle{
			Title:     it.Title,
			Link:      it.Link,
			Source:    it.Source,
			Published: it.Published,
		}
		if a.Title == "" {
			a.Title = fallbackNewsTitle
		}
		if a.Link == "" {
			a.Link = fallbackNewsLink
		}
		if a.Source == "" {
			a.Source = fallbackNewsSource
		}
		articles = append(articles, a)
	}
	return articles
}

// Search は検索クエリを銘柄として解決し、一致した場合は1件の結果を返します。
// 解決は注入されたQuoteService経由で行われるため、キャッシュ済みの銘柄は
// プロバイダへの再問い合わせなしで解決されます。解決できない場合は
// 空のリストを返します（エラーにはなりません）。
func (n *newsUsecase) Search(ctx context.Context, query string) []entity.SearchResult {
	quote, err := n.quotes.GetQuote(ctx, NormalizeSymbol(query))
	if err != nil {
		return []entity.SearchResult{}
	}
	return []entity.SearchResult{{Symbol: quote.Symbol, Name: quote.Name}}
}
