package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/providervault/ai-service/internal/adapters/cache"
	"github.com/providervault/ai-service/internal/adapters/database"
	"github.com/providervault/ai-service/internal/adapters/search"
	"github.com/providervault/ai-service/internal/api/handlers"
	"github.com/providervault/ai-service/internal/api/middleware"
	"github.com/providervault/ai-service/internal/api/routes"
	"github.com/providervault/ai-service/internal/application/prompts"
	"github.com/providervault/ai-service/internal/application/services"
	"github.com/providervault/ai-service/internal/domain/providers"
	"github.com/providervault/ai-service/internal/domain/repositories"
	"github.com/providervault/ai-service/internal/infrastructure/clients/openai"
	"github.com/providervault/ai-service/internal/infrastructure/clients/postgres"
	"github.com/providervault/ai-service/internal/infrastructure/clients/redis"
	"github.com/providervault/ai-service/internal/infrastructure/clients/typesense"
	"github.com/providervault/ai-service/internal/infrastructure/observability"
	"github.com/providervault/ai-service/pkg/config"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// PostgreSQL is the source of truth for provider data; the service
	// cannot run without it.
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	logger.Info().Msg("PostgreSQL client initialized successfully")

	// Redis is optional; the service degrades to uncached reads without it.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Redis client, continuing without caching")
		redisClient = nil
	} else {
		defer redisClient.Close()
		logger.Info().Msg("Redis client initialized successfully")
	}

	// Typesense is optional; semantic search falls back to Postgres lookups.
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Typesense client, search falls back to Postgres")
		typesenseClient = nil
	} else {
		logger.Info().Msg("Typesense client initialized successfully")
	}

	// The model client is mandatory: every answer phase goes through it.
	aiClient, err := openai.NewClient(&cfg.OpenAI)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize OpenAI client")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	providerRepo := database.NewProviderAdapter(pgClient, metrics)
	if cacheProvider != nil {
		providerRepo = database.NewCachedProviderAdapter(providerRepo, cacheProvider)
		logger.Info().Msg("Provider repository wrapped with caching layer")
	} else {
		logger.Warn().Msg("Provider repository running without cache (Redis unavailable)")
	}

	var searchRepo repositories.ProviderSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	// Services
	composer := prompts.NewComposer()
	classifier := services.NewUrgencyClassifier()

	specialtyService := services.NewSpecialtyService(composer, aiClient)
	distributionService := services.NewDistributionService(providerRepo, composer, aiClient)
	triageService := services.NewTriageService(providerRepo, composer, aiClient, classifier)
	searchService := services.NewSearchService(providerRepo, searchRepo, composer, aiClient)
	faqService := services.NewFAQService(providerRepo, composer, aiClient)

	// Handlers
	var cachePinger handlers.Pinger
	if redisClient != nil {
		cachePinger = redisClient
	}
	networkHandler := handlers.NewNetworkHandler(providerRepo, pgClient, cachePinger)
	specialtyHandler := handlers.NewSpecialtyHandler(specialtyService)
	analysisHandler := handlers.NewAnalysisHandler(distributionService)
	triageHandler := handlers.NewTriageHandler(triageService)
	searchHandler := handlers.NewSearchHandler(searchService)
	faqHandler := handlers.NewFAQHandler(faqService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		logger.Info().Msg("Cache middleware initialized successfully")
	}

	router := routes.NewRouter(
		networkHandler,
		specialtyHandler,
		analysisHandler,
		triageHandler,
		searchHandler,
		faqHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	logger.Info().Msg("Server stopped")
}
