package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/udhe/healthintelligence/backend/internal/adapters/cache"
	"github.com/udhe/healthintelligence/backend/internal/adapters/database"
	"github.com/udhe/healthintelligence/backend/internal/adapters/events"
	"github.com/udhe/healthintelligence/backend/internal/analytics"
	"github.com/udhe/healthintelligence/backend/internal/api/handlers"
	"github.com/udhe/healthintelligence/backend/internal/api/middleware"
	"github.com/udhe/healthintelligence/backend/internal/api/routes"
	"github.com/udhe/healthintelligence/backend/internal/application/services"
	"github.com/udhe/healthintelligence/backend/internal/domain/providers"
	"github.com/udhe/healthintelligence/backend/internal/domain/repositories"
	"github.com/udhe/healthintelligence/backend/internal/infrastructure/clients/postgres"
	"github.com/udhe/healthintelligence/backend/internal/infrastructure/clients/redis"
	"github.com/udhe/healthintelligence/backend/internal/infrastructure/observability"
	"github.com/udhe/healthintelligence/backend/pkg/config"
	"github.com/udhe/healthintelligence/backend/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))
	logger := *observability.GetLogger()

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
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	logger.Info().Msg("PostgreSQL client initialized")

	// Redis is optional: without it the API serves every endpoint but
	// loses response caching and the live event feeds.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
		logger.Info().Msg("Redis client initialized")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient, logger)
		logger.Info().Msg("event bus initialized")
	} else {
		eventBus = events.NewNopEventBus()
		logger.Warn().Msg("event bus disabled, live feeds will be empty")
	}
	defer eventBus.Close()

	// Adapters
	facilityAdapter := database.NewFacilityAdapter(pgClient)
	eventAdapter := database.NewEventAdapter(pgClient)
	indicatorAdapter := database.NewIndicatorAdapter(pgClient)
	deadLetterAdapter := database.NewDeadLetterAdapter(pgClient)
	ambulanceAdapter := database.NewAmbulanceAdapter(pgClient)

	var statusAdapter repositories.StatusRepository = database.NewStatusAdapter(pgClient)
	if cacheProvider != nil {
		statusAdapter = database.NewCachedStatusAdapter(statusAdapter, cacheProvider, logger)
		logger.Info().Msg("status adapter wrapped with caching layer")
	}

	// Services
	thresholds := analytics.ThresholdsFromConfig(cfg.Analytics)
	normalizer := utils.NewIndicatorNormalizer()

	ingestionService := services.NewIngestionService(
		indicatorAdapter,
		eventAdapter,
		deadLetterAdapter,
		facilityAdapter,
		eventBus,
		normalizer,
		thresholds,
		logger,
	)
	outbreakService := services.NewOutbreakService(indicatorAdapter, thresholds)
	maternalService := services.NewMaternalRiskService(indicatorAdapter)
	predictionService := services.NewPredictionService(eventAdapter, statusAdapter, thresholds, logger)
	wardRiskService := services.NewWardRiskService(facilityAdapter, eventAdapter, statusAdapter, thresholds, logger)
	statusService := services.NewFacilityStatusService(statusAdapter, facilityAdapter)
	ambulanceService := services.NewAmbulanceService(ambulanceAdapter)
	reportService := services.NewReportService(
		facilityAdapter,
		statusService,
		outbreakService,
		predictionService,
		wardRiskService,
	)

	// Handlers
	ingestionHandler := handlers.NewIngestionHandler(ingestionService)
	analyticsHandler := handlers.NewAnalyticsHandler(outbreakService, maternalService)
	predictionHandler := handlers.NewPredictionHandler(predictionService)
	wardRiskHandler := handlers.NewWardRiskHandler(wardRiskService)
	statusHandler := handlers.NewStatusHandler(statusService)
	ambulanceHandler := handlers.NewAmbulanceHandler(ambulanceService)
	reportHandler := handlers.NewReportHandler(reportService)
	sseHandler := handlers.NewSSEHandler(eventBus, logger)
	wsHandler := handlers.NewWSHandler(eventBus, logger)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, logger)
		logger.Info().Msg("cache middleware initialized")
	}

	router := routes.NewRouter(
		ingestionHandler,
		analyticsHandler,
		predictionHandler,
		wardRiskHandler,
		statusHandler,
		ambulanceHandler,
		reportHandler,
		sseHandler,
		wsHandler,
		cacheMiddleware,
		metrics,
		logger,
	)

	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE and websocket connections are long-lived
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server stopped")
}
