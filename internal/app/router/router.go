// Package router はアプリケーションのHTTPルーティングを構成します。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "holdings_backend/internal/feature/auth/transport/handler"
	historyhandler "holdings_backend/internal/feature/history/transport/handler"
	portfoliohandler "holdings_backend/internal/feature/portfolio/transport/handler"
	quotehandler "holdings_backend/internal/feature/quote/transport/handler"
	watchlisthandler "holdings_backend/internal/feature/watchlist/transport/handler"
	"holdings_backend/internal/platform/http/handler"
	jwtmw "holdings_backend/internal/platform/jwt"
)

// NewRouter は全フィーチャーのハンドラーを受け取り、ルートを登録した
// gin.Engineを返します。 /api 以下のルートはJWT認証が必要です。
func NewRouter(
	auth *authhandler.AuthHandler,
	portfolio *portfoliohandler.PortfolioHandler,
	watchlist *watchlisthandler.WatchlistHandler,
	quote *quotehandler.QuoteHandler,
	history *historyhandler.HistoryHandler,
) *gin.Engine {
	r := gin.Default()

	// フロントエンドからのブラウザアクセスを許可
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", auth.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", auth.Login)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	api := r.Group("/api")
	api.Use(jwtmw.AuthRequired())
	{
		// ポートフォリオ
		api.GET("/portfolio", portfolio.GetPortfolioHandler)
		api.POST("/portfolio/add", portfolio.AddHoldingHandler)
		api.PUT("/portfolio/update", portfolio.UpdateHoldingHandler)
		api.DELETE("/portfolio/delete/:symbol", portfolio.DeleteHoldingHandler)
		api.POST("/portfolio/reorder", portfolio.ReorderHandler)
		api.POST("/portfolio/upload", portfolio.UploadHandler)

		// ウォッチリスト
		api.GET("/watchlist", watchlist.GetWatchlistHandler)
		api.POST("/watchlist/add/:symbol", watchlist.AddToWatchlistHandler)
		api.DELETE("/watchlist/remove/:symbol", watchlist.RemoveFromWatchlistHandler)

		// 銘柄情報
		api.GET("/stock/:symbol", quote.GetQuoteHandler)
		api.GET("/history/:symbol", history.GetHistoryHandler)
		api.GET("/news/:symbol", quote.GetNewsHandler)
		api.GET("/search", quote.SearchHandler)
	}

	return r
}
