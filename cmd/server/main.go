package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"portfolio_backend/internal/app/router"
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	authusecase "portfolio_backend/internal/feature/auth/usecase"
	portfolioadapters "portfolio_backend/internal/feature/portfolio/adapters"
	portfoliohandler "portfolio_backend/internal/feature/portfolio/transport/handler"
	portfoliousecase "portfolio_backend/internal/feature/portfolio/usecase"
	valuationhandler "portfolio_backend/internal/feature/valuation/transport/handler"
	valuationusecase "portfolio_backend/internal/feature/valuation/usecase"
	"portfolio_backend/internal/platform/cache"
	"portfolio_backend/internal/platform/externalapi/twelvedata"
	platformhttp "portfolio_backend/internal/platform/http"
	jwtmw "portfolio_backend/internal/platform/jwt"
	infraredis "portfolio_backend/internal/platform/redis"
	"portfolio_backend/internal/shared/ratelimiter"
)

// seedPositions は起動時に投入されるデフォルトの保有ポジションです。
var seedPositions = []struct {
	ticker   string
	shares   int
	buyPrice float64
	buyDate  string
}{
	{"AAPL", 10, 150.00, "2025-08-01"},
	{"GOOGL", 5, 2500.00, "2025-08-01"},
	{"MSFT", 8, 300.00, "2025-08-01"},
}

func main() {
	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without price memoization.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// PriceSource: Twelve Data + レートリミット + Redisメモ化
	tdCfg := twelvedata.LoadConfig()
	if tdCfg.TwelveDataAPIKey == "" {
		log.Println("[WARN] TWELVE_DATA_API_KEY is not set. Price fetches will fail.")
	}
	httpClient := platformhttp.NewHTTPClient(tdCfg.Timeout)
	// 無料プランのAPIクレジットは8回/分
	limiter := ratelimiter.NewRateLimiter(8, time.Minute)
	source := twelvedata.NewTwelveDataPrices(tdCfg, httpClient, limiter)
	cachedSource := cache.NewCachingPriceSource(rdb, 5*time.Minute, cache.TimeUntilNext8AM(), source, "prices")

	// Repository
	portfolioRepo := portfolioadapters.NewPortfolioMemory()

	// Usecase
	portfolioUC := portfoliousecase.NewPortfolioUsecase(portfolioRepo)
	valuationUC := valuationusecase.NewValuationUsecase(cachedSource, portfolioRepo)
	signalUC := valuationusecase.NewSignalUsecase(cachedSource, portfolioRepo)
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(os.Getenv("OPERATOR_PASSWORD_HASH"), jwtGen)

	// デフォルトのポートフォリオを投入（通常の検証パスを通す）
	ctx := context.Background()
	for _, s := range seedPositions {
		if _, err := portfolioUC.AddPosition(ctx, s.ticker, s.shares, s.buyPrice, s.buyDate); err != nil {
			log.Println("[WARN] Failed to seed position:", s.ticker, err)
		}
	}

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	portfolioH := portfoliohandler.NewPortfolioHandler(portfolioUC)
	valuationH := valuationhandler.NewValuationHandler(valuationUC, signalUC)

	// ルータ生成
	router := router.NewRouter(authH, portfolioH, valuationH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	if os.Getenv("OPERATOR_PASSWORD_HASH") == "" {
		log.Println("[WARN] OPERATOR_PASSWORD_HASH is not set. Mutating endpoints cannot be used.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
