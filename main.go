package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/gradebook-service/internal/config"
	"github.com/SAP-F-2025/gradebook-service/internal/events"
	"github.com/SAP-F-2025/gradebook-service/internal/handlers"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/repositories"
	"github.com/SAP-F-2025/gradebook-service/internal/services"
	"github.com/SAP-F-2025/gradebook-service/internal/utils"
	"github.com/SAP-F-2025/gradebook-service/internal/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting gradebook service",
		"environment", cfg.Environment,
		"persistence", cfg.Persistence,
		"port", cfg.Port)

	if err := run(cfg, logger); err != nil {
		logger.Error("Service exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	repo, err := newRepository(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up persistence: %w", err)
	}
	defer repo.Close()

	store, err := loadOrInitStore(ctx, cfg, repo, logger)
	if err != nil {
		return err
	}

	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to set up event publisher: %w", err)
	}
	defer publisher.Close()

	session := services.NewSession(store, repo, publisher, logger)

	v := validator.New()
	manager := services.NewServiceManager(session, logger, v)
	if err := manager.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer manager.Shutdown(context.Background())

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlerLogger := utils.NewSlogLogger(logger)
	handlers.SetupMiddleware(router, handlerLogger)
	handlers.NewHandlerManager(manager, session, handlerLogger).SetupRoutes(router)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-quit:
		logger.Info("Shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func newRepository(cfg *config.Config) (repositories.SnapshotRepository, error) {
	switch cfg.Persistence {
	case config.PersistenceRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		return repositories.NewRedisRepository(redis.NewClient(opts)), nil

	case config.PersistencePostgres:
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return repositories.NewPostgresRepository(db)

	default:
		return repositories.NewMemoryRepository(), nil
	}
}

// loadOrInitStore loads the persisted snapshot, or starts a fresh store when
// none exists yet (seeded with demo data when configured).
func loadOrInitStore(ctx context.Context, cfg *config.Config, repo repositories.SnapshotRepository, logger *slog.Logger) (*models.Store, error) {
	store, err := repo.Load(ctx)
	if err == nil {
		logger.Info("Loaded persisted snapshot",
			"profiles", len(store.Profiles),
			"classes", len(store.Classes))
		return store, nil
	}
	if !errors.Is(err, repositories.ErrSnapshotNotFound) {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if cfg.SeedDemoData {
		logger.Info("No snapshot found, seeding demo data")
		return models.SeedStore(), nil
	}
	logger.Info("No snapshot found, starting with an empty store")
	return models.NewStore(), nil
}

func newPublisher(cfg *config.Config, logger *slog.Logger) (events.EventPublisher, error) {
	if len(cfg.KafkaBrokers) > 0 {
		logger.Info("Publishing events to kafka", "brokers", cfg.KafkaBrokers)
		return events.NewKafkaPublisher(cfg.KafkaBrokers, logger)
	}
	return events.NewGoChannelPublisher(logger), nil
}
