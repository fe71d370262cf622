package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/terravista/projection-service/internal/application/usecase"
	"github.com/terravista/projection-service/internal/domain/service"
	"github.com/terravista/projection-service/internal/infrastructure/cache"
	"github.com/terravista/projection-service/internal/infrastructure/config"
	"github.com/terravista/projection-service/internal/infrastructure/messaging"
	"github.com/terravista/projection-service/internal/infrastructure/persistence/postgres"
	"github.com/terravista/projection-service/internal/presentation/rest"
	pkgkafka "github.com/terravista/projection-service/pkg/kafka"
	"github.com/terravista/projection-service/pkg/observability"
	pkgpostgres "github.com/terravista/projection-service/pkg/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	logger.Info("starting projection service", slog.Int("http_port", cfg.HTTPPort))

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("tracing disabled", slog.String("error", err.Error()))
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(shutdownCtx); err != nil {
				logger.Warn("tracer shutdown failed", slog.String("error", err.Error()))
			}
		}()
	}

	poolCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	pool, err := pkgpostgres.NewPool(poolCtx, pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	})
	cancel()
	if err != nil {
		logger.Error("database connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	dsn := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}.DSN()
	if err := pkgpostgres.RunMigrations(dsn, cfg.MigrationsPath); err != nil {
		logger.Warn("migrations not applied", slog.String("error", err.Error()))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	producer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers})
	defer func() {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka producer close failed", slog.String("error", err.Error()))
		}
	}()

	repo := postgres.NewProjectionRepo(pool)
	publisher := messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger)
	calcCache := cache.NewRedisCalculationCache(redisClient)
	totalsCalculator := service.NewTotalsCalculator()
	scenarioAnalyzer := service.NewScenarioAnalyzer(totalsCalculator)

	projectionHandler := rest.NewProjectionHandler(
		usecase.NewCreateProjectionUseCase(repo, publisher),
		usecase.NewGetProjectionUseCase(repo),
		usecase.NewListClientProjectionsUseCase(repo),
		usecase.NewRecalculateProjectionUseCase(repo, publisher),
		usecase.NewDeleteProjectionUseCase(repo, publisher),
		usecase.NewPreviewCalculationUseCase(calcCache, logger),
		usecase.NewGetPaymentTotalsUseCase(repo, totalsCalculator),
		usecase.NewGetScenarioAnalysisUseCase(repo, scenarioAnalyzer),
		logger,
	)

	healthHandler := rest.NewHealthHandler(logger, map[string]rest.ReadinessCheck{
		"postgres": func(ctx context.Context) error {
			return pkgpostgres.HealthCheck(ctx, pool)
		},
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	})

	mux := http.NewServeMux()
	projectionHandler.RegisterRoutes(mux)
	healthHandler.RegisterRoutes(mux)

	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("metrics disabled", slog.String("error", err.Error()))
	} else {
		mux.Handle("GET /metrics", metricsHandler)
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("http server failed", slog.String("error", err.Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", slog.String("error", err.Error()))
	}

	logger.Info("projection service stopped")
}
