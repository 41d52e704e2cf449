// Package handler はquoteフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"holdings_backend/internal/feature/quote/domain/entity"
	"holdings_backend/internal/feature/quote/transport/http/dto"
	"holdings_backend/internal/feature/quote/usecase"
)

// QuoteUsecase は単一銘柄のQuote取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type QuoteUsecase interface {
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
}

// NewsUsecase はニュース取得と銘柄検索のユースケースインターフェースを定義します。
type NewsUsecase interface {
	GetNews(ctx context.Context, symbol string) []entity.NewsArticle
	Search(ctx context.Context, query string) []entity.SearchResult
}

// QuoteHandler はQuote・ニュース・検索のHTTPリクエストを処理します。
type QuoteHandler struct {
	quotes QuoteUsecase
	news   NewsUsecase
}

// NewQuoteHandler は指定されたusecaseでQuoteHandlerの新しいインスタンスを生成します。
func NewQuoteHandler(quotes QuoteUsecase, news NewsUsecase) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, news: news}
}

// GetQuoteHandler は1銘柄の正規化済みスナップショットをJSONで返します。
//
// エンドポイント例:
// GET /api/stock/AAPL
func (h *QuoteHandler) GetQuoteHandler(c *gin.Context) {
	symbol := c.Param("symbol")

	q, err := h.quotes.GetQuote(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, usecase.ErrDataUnavailable) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: fmt.Sprintf("Failed to fetch data for %s", symbol)})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fmt.Sprintf("Failed to fetch data for %s", symbol)})
		return
	}

	c.JSON(http.StatusOK, dto.QuoteResponse{
		Symbol:          q.Symbol,
		Name:            q.Name,
		Price:           q.Price,
		Change:          q.Change,
		ChangePercent:   q.ChangePercent,
		MarketCap:       q.MarketCap,
		Volume:          q.Volume,
		Type:            string(q.AssetType),
		PreMarketPrice:  q.PreMarketPrice,
		PostMarketPrice: q.PostMarketPrice,
		MarketState:     string(q.MarketState),
	})
}

// GetNewsHandler は銘柄のニュース記事をJSONで返します。
// プロバイダの失敗は空配列として返り、エラーにはなりません。
//
// エンドポイント例:
// GET /api/news/AAPL
func (h *QuoteHandler) GetNewsHandler(c *gin.Context) {
	articles := h.news.GetNews(c.Request.Context(), c.Param("symbol"))

	out := make([]dto.NewsArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, dto.NewsArticleResponse{
			Title:     a.Title,
			Link:      a.Link,
			Source:    a.Source,
			Published: a.Published,
		})
	}

	c.JSON(http.StatusOK, out)
}

// SearchHandler は銘柄検索の結果をJSONで返します。
// 解決できないクエリは空配列として返ります。
//
// エンドポイント例:
// GET /api/search?query=AAPL
func (h *QuoteHandler) SearchHandler(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "query parameter is required"})
		return
	}

	results := h.news.Search(c.Request.Context(), query)

	out := make([]dto.SearchResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.SearchResultResponse{Symbol: r.Symbol, Name: r.Name})
	}

	c.JSON(http.StatusOK, out)
}
