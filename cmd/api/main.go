// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Yomira Shelf HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/yomira-shelf/internal/api"
	"github.com/taibuivan/yomira-shelf/internal/core/catalog"
	"github.com/taibuivan/yomira-shelf/internal/core/collection"
	"github.com/taibuivan/yomira-shelf/internal/core/manga"
	"github.com/taibuivan/yomira-shelf/internal/core/stats"
	"github.com/taibuivan/yomira-shelf/internal/platform/config"
	"github.com/taibuivan/yomira-shelf/internal/platform/constants"
	"github.com/taibuivan/yomira-shelf/internal/platform/migration"
	pgstore "github.com/taibuivan/yomira-shelf/internal/platform/postgres"
	redisstore "github.com/taibuivan/yomira-shelf/internal/platform/redis"
	"github.com/taibuivan/yomira-shelf/internal/platform/sec"
	"github.com/taibuivan/yomira-shelf/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[Yomira Shelf] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, cfg.StoreTimeout, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security ───────────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	searcher := catalog.NewCachedSearcher(
		catalog.NewClient(catalog.ClientConfig{
			BaseURL:          cfg.CatalogBaseURL,
			Timeout:          cfg.CatalogTimeout,
			RateLimit:        cfg.CatalogRateLimit,
			RateLimitRetries: cfg.CatalogRateLimitRetries,
		}, log),
		catalog.NewRedisCache(rdb),
		cfg.CatalogCacheTTL,
		log,
	)

	collectionService := collection.NewService(
		collection.NewPostgresRepository(pool), log,
		collection.WithStoreTimeout(cfg.StoreTimeout),
	)
	mangaService := manga.NewService(
		manga.NewPostgresRepository(pool), collectionService, log,
		manga.WithStoreTimeout(cfg.StoreTimeout),
		manga.WithCatalogLookup(catalog.NewShelfLookup(searcher)),
	)
	statsService := stats.NewService(collectionService, mangaService, log)
	authService := auth.NewService(
		auth.NewUserRepository(pool), auth.NewSessionRepository(rdb), jwtSvc, log,
		auth.WithStoreTimeout(cfg.StoreTimeout),
	)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService),
		Catalog:    catalog.NewHandler(searcher),
		Collection: collection.NewHandler(collectionService),
		Manga:      manga.NewHandler(mangaService),
		Stats:      stats.NewHandler(statsService),
	})

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// It is limited to startup wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
