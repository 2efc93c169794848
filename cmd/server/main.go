package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/kindred-ai/kindred/internal/api"
	"github.com/kindred-ai/kindred/internal/config"
	"github.com/kindred-ai/kindred/internal/domain"
	"github.com/kindred-ai/kindred/internal/llm"
	"github.com/kindred-ai/kindred/internal/persona"
	"github.com/kindred-ai/kindred/internal/store"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := config.Load(); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	// Postgres when configured, local SQLite otherwise.
	var profileStore domain.ProfileStore
	if dbURL := config.DatabaseURL(); dbURL != "" {
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("failed to ping database", zap.Error(err))
		}
		profileStore = store.NewProfileStore(pool)
		logger.Info("connected to Postgres")
	} else {
		sqliteStore, err := store.NewSQLiteStore(config.SQLitePath())
		if err != nil {
			logger.Fatal("failed to open SQLite database", zap.Error(err))
		}
		profileStore = sqliteStore
		logger.Info("using local SQLite database", zap.String("path", config.SQLitePath()))
	}
	defer profileStore.Close()

	cfg, err := persona.Load(config.PersonaConfigPath())
	if err != nil {
		logger.Fatal("failed to load persona config", zap.Error(err))
	}
	wisdom, err := persona.LoadWisdom(config.WisdomPath())
	if err != nil {
		logger.Fatal("failed to load wisdom config", zap.Error(err))
	}

	llmProvider := config.LLMProvider()
	llmClient, err := llm.NewClient(llmProvider, config.LLMAPIKey(), config.OllamaHost())
	if err != nil {
		logger.Warn("LLM client initialization failed, persona simulator will handle all turns",
			zap.String("provider", llmProvider), zap.Error(err))
		llmClient = nil
	} else if llmClient != nil {
		probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		models, probeErr := llmClient.ListModels(probeCtx)
		cancel()
		if probeErr != nil {
			logger.Warn("LLM backend unreachable, falling back per turn",
				zap.String("provider", llmProvider), zap.Error(probeErr))
		} else {
			logger.Info("LLM client initialized",
				zap.String("provider", llmProvider), zap.Int("models", len(models)))
		}
	}

	app := api.NewApp(profileStore, llmClient, cfg, wisdom, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
