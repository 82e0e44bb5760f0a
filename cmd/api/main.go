package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"values-md/internal/config"
	"values-md/internal/db"
	apihttp "values-md/internal/http"
	"values-md/internal/llm"
	"values-md/internal/repository"
	"values-md/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	motifRepo := repository.NewPgMotifRepository(pool)
	frameworkRepo := repository.NewPgFrameworkRepository(pool)
	dilemmaRepo := repository.NewPgDilemmaRepository(pool)
	responseRepo := repository.NewPgResponseRepository(pool)
	demographicsRepo := repository.NewPgDemographicsRepository(pool)
	llmResponseRepo := repository.NewPgLLMResponseRepository(pool)
	adminRepo := repository.NewPgAdminRepository(pool)

	experimentTTL := time.Duration(cfg.ExperimentTTLHours) * time.Hour
	var (
		tokenStore      service.RefreshTokenStore
		experimentStore service.ExperimentStore
		redisClient     *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
			experimentStore = service.NewRedisExperimentStore(redisClient, experimentTTL)
		}
		cancel()
	}
	if experimentStore == nil {
		experimentStore = service.NewMemoryExperimentStore(experimentTTL)
	}

	jwtSvc := service.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	aggregator := service.ValuesAggregator{WeightNormalization: cfg.WeightNormalization}
	synthesizer := service.ValuesSynthesizer{}
	valuesSvc := service.NewValuesService(
		logger,
		responseRepo,
		dilemmaRepo,
		motifRepo,
		frameworkRepo,
		aggregator,
		synthesizer,
		cfg.MinProfileResponses,
	)

	llmClient := llm.NewHTTPClient(cfg.OpenRouterBaseURL, cfg.OpenRouterKey, cfg.SiteURL, logger)
	adminSvc := service.NewAdminService(logger, adminRepo)
	experimentSvc := service.NewExperimentService(
		logger,
		llmClient,
		experimentStore,
		valuesSvc,
		responseRepo,
		dilemmaRepo,
		llmResponseRepo,
	)

	dilemmaHandler := apihttp.NewDilemmaHandler(logger, dilemmaRepo)
	responseHandler := apihttp.NewResponseHandler(logger, responseRepo, demographicsRepo)
	valuesHandler := apihttp.NewValuesHandler(logger, valuesSvc)
	adminHandler := apihttp.NewAdminHandler(logger, adminSvc, jwtSvc, experimentSvc, responseRepo)
	router := apihttp.NewRouter(logger, pool, dilemmaHandler, responseHandler, valuesHandler, adminHandler, jwtSvc)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
