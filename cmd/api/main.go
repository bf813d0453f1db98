// Package main is the entry point for the Eco Impact API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ecoimpact/backend/config"
	"github.com/ecoimpact/backend/internal/infra/db"
	"github.com/ecoimpact/backend/internal/infra/dependency"
	"github.com/ecoimpact/backend/internal/infra/observability"
	"github.com/ecoimpact/backend/internal/integration/adapters"
	"github.com/ecoimpact/backend/internal/integration/cache"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/controller"
	"github.com/ecoimpact/backend/internal/integration/warehouse"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Eco Impact API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	opts := dependency.Options{
		Metrics:      observability.NewMetrics(),
		HealthChecks: map[string]controller.HealthCheck{},
	}

	// Redis is optional: without it display endpoints fall back to demo data only.
	if cfg.Redis.URL != "" {
		client, err := cache.NewRedisClient(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Error("Invalid redis configuration", "error", err)
			os.Exit(1)
		}
		defer client.Close()

		opts.Cache = cache.NewRedisSnapshotCache(client, cfg.Redis.SnapshotTTL)
		opts.HealthChecks["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
		slog.Info("Snapshot cache enabled", "ttl", cfg.Redis.SnapshotTTL)
	}

	if cfg.BigQuery.ProjectID != "" {
		repo, err := warehouse.NewBigQueryLeaderboardRepository(context.Background(),
			cfg.BigQuery.ProjectID, cfg.BigQuery.Dataset, cfg.BigQuery.Table)
		if err != nil {
			slog.Warn("BigQuery leaderboard source unavailable, using database", "error", err)
		} else {
			defer repo.Close()
			opts.LeaderboardSource = repo
			slog.Info("Leaderboard candidates read from BigQuery",
				"project", cfg.BigQuery.ProjectID,
				"table", fmt.Sprintf("%s.%s", cfg.BigQuery.Dataset, cfg.BigQuery.Table),
			)
		}
	}

	if cfg.Gemini.APIKey != "" {
		opts.CoachingWriter = adapters.NewGeminiCoachingWriter(cfg.Gemini.APIKey, cfg.Gemini.Model)
		slog.Info("Coaching copy personalized with Gemini", "model", cfg.Gemini.Model)
	}

	injector, err := dependency.NewInjector(cfg, database, opts)
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
