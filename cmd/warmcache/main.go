// warmcache は保有銘柄とウォッチリストの全銘柄のQuoteを事前取得して
// Redisキャッシュを温めるバッチコマンドです。
package main

import (
	"context"
	"log"
	"time"

	"holdings_backend/internal/app/di"
	portfolioadapters "holdings_backend/internal/feature/portfolio/adapters"
	quoteusecase "holdings_backend/internal/feature/quote/usecase"
	watchlistadapters "holdings_backend/internal/feature/watchlist/adapters"
	infradb "holdings_backend/internal/platform/db"
	infraredis "holdings_backend/internal/platform/redis"
	"holdings_backend/internal/shared/ratelimiter"
)

func main() {
	db := infradb.OpenDB()

	rdb, err := infraredis.NewRedisClient()
	if err != nil {
		// キャッシュが無ければ温める意味がない
		log.Fatal("redis unavailable:", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Println("[ERROR] Failed to close Redis client:", err)
		}
	}()

	market := di.NewMarket()
	quoteUC := quoteusecase.NewQuoteUsecase(market)
	quotes := di.NewQuoteService(rdb, quoteUC)

	holdingRepo := portfolioadapters.NewHoldingPostgres(db)
	watchlistRepo := watchlistadapters.NewWatchlistPostgres(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	held, err := holdingRepo.DistinctSymbols(ctx)
	if err != nil {
		log.Fatal("failed to load holding symbols:", err)
	}
	watched, err := watchlistRepo.DistinctSymbols(ctx)
	if err != nil {
		log.Fatal("failed to load watchlist symbols:", err)
	}

	symbols := mergeSymbols(held, watched)

	// プロバイダのレートリミットに合わせて1分あたりの呼び出し数を制限
	limiter := ratelimiter.NewRateLimiter(60, time.Minute)
	warm := quoteusecase.NewWarmUsecase(quotes, limiter)
	warm.WarmAll(ctx, symbols)

	log.Printf("warmcache ok: %d symbols", len(symbols))
}

// mergeSymbols は2つの銘柄リストを重複を除いて結合します。
func mergeSymbols(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	merged := make([]string, 0, len(a)+len(b))
	for _, s := range append(a, b...) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		merged = append(merged, s)
	}
	return merged
}
