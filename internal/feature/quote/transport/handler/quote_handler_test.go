package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"holdings_backend/internal/feature/quote/domain/entity"
	"holdings_backend/internal/feature/quote/transport/handler"
	"holdings_backend/internal/feature/quote/usecase"
)

// mockQuoteUsecase はQuoteUsecaseインターフェースのモック実装です。
type mockQuoteUsecase struct {
	GetQuoteFunc func(ctx context.Context, symbol string) (*entity.Quote, error)
}

func (m *mockQuoteUsecase) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	return m.GetQuoteFunc(ctx, symbol)
}

// mockNewsUsecase はNewsUsecaseインターフェースのモック実装です。
type mockNewsUsecase struct {
	GetNewsFunc func(ctx context.Context, symbol string) []entity.NewsArticle
	SearchFunc  func(ctx context.Context, query string) []entity.SearchResult
}

func (m *mockNewsUsecase) GetNews(ctx context.Context, symbol string) []entity.NewsArticle {
	return m.GetNewsFunc(ctx, symbol)
}
func (m *mockNewsUsecase) Search(ctx context.Context, query string) []entity.SearchResult {
	return m.SearchFunc(ctx, query)
}

func setupRouter(quotes handler.QuoteUsecase, news handler.NewsUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewQuoteHandler(quotes, news)

	r := gin.New()
	r.GET("/api/stock/:symbol", h.GetQuoteHandler)
	r.GET("/api/news/:symbol", h.GetNewsHandler)
	r.GET("/api/search", h.SearchHandler)
	return r
}

func doRequest(r *gin.Engine, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func f64p(v float64) *float64 { return &v }
func i64p(v int64) *int64     { return &v }

// TestQuoteHandler_GetQuoteHandler はQuoteレスポンスの形式とエラーマッピングを検証します。
func TestQuoteHandler_GetQuoteHandler(t *testing.T) {
	t.Run("success: regular session", func(t *testing.T) {
		quotes := &mockQuoteUsecase{
			GetQuoteFunc: func(ctx context.Context, symbol string) (*entity.Quote, error) {
				assert.Equal(t, "AAPL", symbol)
				return &entity.Quote{
					Symbol:          "AAPL",
					Name:            "Apple Inc.",
					Price:           150.5,
					Change:          2.5,
					ChangePercent:   1.69,
					MarketCap:       f64p(2.5e12),
					Volume:          i64p(1000000),
					AssetType:       entity.AssetTypeStock,
					MarketState:     entity.MarketStateRegular,
					PreMarketPrice:  f64p(0),
					PostMarketPrice: f64p(0),
				}, nil
			},
		}
		w := doRequest(setupRouter(quotes, &mockNewsUsecase{}), "/api/stock/AAPL")

		assert.Equal(t, http.StatusOK, w.Code)
		expected := `{
			"symbol":"AAPL","name":"Apple Inc.","price":150.5,"change":2.5,
			"changePercent":1.69,"marketCap":2500000000000,"volume":1000000,
			"type":"stock","preMarketPrice":0,"postMarketPrice":0,"marketState":"REGULAR"
		}`
		assert.JSONEq(t, expected, w.Body.String())
	})

	t.Run("success: missing optional fields are null", func(t *testing.T) {
		quotes := &mockQuoteUsecase{
			GetQuoteFunc: func(ctx context.Context, symbol string) (*entity.Quote, error) {
				return &entity.Quote{
					Symbol:      "BTC-USD",
					Name:        "Bitcoin USD",
					Price:       65000,
					AssetType:   entity.AssetTypeCrypto,
					MarketState: entity.MarketStateRegular,
				}, nil
			},
		}
		w := doRequest(setupRouter(quotes, &mockNewsUsecase{}), "/api/stock/BTC-USD")

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `"marketCap":null`)
		assert.Contains(t, body, `"volume":null`)
		assert.Contains(t, body, `"type":"crypto"`)
	})

	t.Run("error: data unavailable maps to 404", func(t *testing.T) {
		quotes := &mockQuoteUsecase{
			GetQuoteFunc: func(ctx context.Context, symbol string) (*entity.Quote, error) {
				return nil, usecase.ErrDataUnavailable
			},
		}
		w := doRequest(setupRouter(quotes, &mockNewsUsecase{}), "/api/stock/NOPE")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Failed to fetch data for NOPE"}`, w.Body.String())
	})

	t.Run("error: unexpected failure maps to 500", func(t *testing.T) {
		quotes := &mockQuoteUsecase{
			GetQuoteFunc: func(ctx context.Context, symbol string) (*entity.Quote, error) {
				return nil, errors.New("network timeout")
			},
		}
		w := doRequest(setupRouter(quotes, &mockNewsUsecase{}), "/api/stock/AAPL")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		// プロバイダのエラー文言は漏らさない
		assert.NotContains(t, w.Body.String(), "network timeout")
	})
}

// TestQuoteHandler_GetNewsHandler はニュースレスポンスを検証します。
func TestQuoteHandler_GetNewsHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		news := &mockNewsUsecase{
			GetNewsFunc: func(ctx context.Context, symbol string) []entity.NewsArticle {
				return []entity.NewsArticle{
					{Title: "Apple launches product", Link: "https://example.com/1", Source: "Example News", Published: "2026-08-30T12:00:00Z"},
				}
			},
		}
		w := doRequest(setupRouter(&mockQuoteUsecase{}, news), "/api/news/AAPL")

		assert.Equal(t, http.StatusOK, w.Code)
		expected := `[{"title":"Apple launches product","link":"https://example.com/1","source":"Example News","published":"2026-08-30T12:00:00Z"}]`
		assert.JSONEq(t, expected, w.Body.String())
	})

	t.Run("provider failure returns empty array", func(t *testing.T) {
		news := &mockNewsUsecase{
			GetNewsFunc: func(ctx context.Context, symbol string) []entity.NewsArticle {
				return nil
			},
		}
		w := doRequest(setupRouter(&mockQuoteUsecase{}, news), "/api/news/AAPL")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

// TestQuoteHandler_SearchHandler は検索エンドポイントを検証します。
func TestQuoteHandler_SearchHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		news := &mockNewsUsecase{
			SearchFunc: func(ctx context.Context, query string) []entity.SearchResult {
				assert.Equal(t, "AAPL", query)
				return []entity.SearchResult{{Symbol: "AAPL", Name: "Apple Inc."}}
			},
		}
		w := doRequest(setupRouter(&mockQuoteUsecase{}, news), "/api/search?query=AAPL")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"symbol":"AAPL","name":"Apple Inc."}]`, w.Body.String())
	})

	t.Run("unresolvable query returns empty array", func(t *testing.T) {
		news := &mockNewsUsecase{
			SearchFunc: func(ctx context.Context, query string) []entity.SearchResult {
				return nil
			},
		}
		w := doRequest(setupRouter(&mockQuoteUsecase{}, news), "/api/search?query=NOPE")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("missing query is a client error", func(t *testing.T) {
		w := doRequest(setupRouter(&mockQuoteUsecase{}, &mockNewsUsecase{}), "/api/search")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
