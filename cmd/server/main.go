package main

import (
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"holdings_backend/internal/app/di"
	"holdings_backend/internal/app/router"
	authadapters "holdings_backend/internal/feature/auth/adapters"
	authhandler "holdings_backend/internal/feature/auth/transport/handler"
	authusecase "holdings_backend/internal/feature/auth/usecase"
	historyhandler "holdings_backend/internal/feature/history/transport/handler"
	historyusecase "holdings_backend/internal/feature/history/usecase"
	portfolioadapters "holdings_backend/internal/feature/portfolio/adapters"
	portfoliohandler "holdings_backend/internal/feature/portfolio/transport/handler"
	portfoliousecase "holdings_backend/internal/feature/portfolio/usecase"
	quotehandler "holdings_backend/internal/feature/quote/transport/handler"
	quoteusecase "holdings_backend/internal/feature/quote/usecase"
	watchlistadapters "holdings_backend/internal/feature/watchlist/adapters"
	watchlisthandler "holdings_backend/internal/feature/watchlist/transport/handler"
	watchlistusecase "holdings_backend/internal/feature/watchlist/usecase"
	infradb "holdings_backend/internal/platform/db"
	jwtmw "holdings_backend/internal/platform/jwt"
	infraredis "holdings_backend/internal/platform/redis"
)

// tokenExpiration は発行するJWTの有効期間です。
const tokenExpiration = 24 * time.Hour

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// 外部マーケットデータプロバイダ
	market := di.NewMarket()

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	holdingRepo := portfolioadapters.NewHoldingPostgres(db)
	watchlistRepo := watchlistadapters.NewWatchlistPostgres(db)

	// Usecase
	quoteUC := quoteusecase.NewQuoteUsecase(market)
	// Quote取得はRedisキャッシュでラップ
	quotes := di.NewQuoteService(rdb, quoteUC)
	// 検索の銘柄解決もキャッシュ経由にする
	newsUC := quoteusecase.NewNewsUsecase(market, quotes)
	historyUC := historyusecase.NewHistoryUsecase(market)
	portfolioUC := portfoliousecase.NewPortfolioUsecase(holdingRepo, quotes)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(watchlistRepo, quotes)

	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), tokenExpiration)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	portfolioH := portfoliohandler.NewPortfolioHandler(portfolioUC)
	watchlistH := watchlisthandler.NewWatchlistHandler(watchlistUC)
	quoteH := quotehandler.NewQuoteHandler(quotes, newsUC)
	historyH := historyhandler.NewHistoryHandler(historyUC)

	// ルータ生成
	r := router.NewRouter(authH, portfolioH, watchlistH, quoteH, historyH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
