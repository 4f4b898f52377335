// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Staynest HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from the environment (and .env when present).
//  3. Connect to PostgreSQL (pgxpool) and Redis.
//  4. Run database migrations (idempotent).
//  5. Wire stores, services, identity providers and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/taibuivan/staynest/internal/api"
	"github.com/taibuivan/staynest/internal/listing"
	"github.com/taibuivan/staynest/internal/listing/filter"
	"github.com/taibuivan/staynest/internal/platform/config"
	"github.com/taibuivan/staynest/internal/platform/constants"
	"github.com/taibuivan/staynest/internal/platform/metrics"
	"github.com/taibuivan/staynest/internal/platform/middleware"
	"github.com/taibuivan/staynest/internal/platform/migration"
	pgstore "github.com/taibuivan/staynest/internal/platform/postgres"
	redisstore "github.com/taibuivan/staynest/internal/platform/redis"
	"github.com/taibuivan/staynest/internal/platform/sec"
	"github.com/taibuivan/staynest/internal/users/account"
	"github.com/taibuivan/staynest/internal/users/auth"
	"github.com/taibuivan/staynest/internal/users/oauth/github"
	"github.com/taibuivan/staynest/internal/users/oauth/google"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

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

	// Root context lives until shutdown; background workers stop with it.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Security & Metrics ─────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	must(log, metrics.Register(nil), "register metrics")

	limiter := middleware.NewRateLimiter(constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)
	limiter.StartCleanup(rootCtx, constants.RateLimitCleanupInterval, constants.RateLimitClientTTL)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(
		auth.NewPostgresDirectory(pool),
		auth.NewSessionRepository(pool),
		auth.NewStateRepository(rdb),
		tokens,
		log,
		identityProviders(cfg, log)...,
	)

	listingService := listing.NewService(
		listing.NewPostgresRepository(pool),
		constants.ListingCacheTTL,
		constants.ListingCacheCleanupInterval,
		log,
	)

	accountService := account.NewService(
		account.NewProfileRepository(pool),
		account.NewSessionRepository(pool),
		listingService,
		log,
	)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	server := api.NewServer(cfg, log, tokens, limiter, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Metrics:    metrics.Handler(nil),
		Auth:       auth.NewHandler(authService),
		Account:    account.NewHandler(accountService),
		Categories: filter.NewHandler(constants.HomePath),
		Listings:   listing.NewHandler(listingService),
	})

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	rootCancel()

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// identityProviders enables each federated provider whose client ID is configured.
func identityProviders(cfg *config.Config, log *slog.Logger) []auth.IdentityProvider {
	var providers []auth.IdentityProvider

	if cfg.GitHubClientID != "" {
		providers = append(providers, github.New(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.CallbackURL(github.ProviderName)))
	}
	if cfg.GoogleClientID != "" {
		providers = append(providers, google.New(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.CallbackURL(google.ProviderName)))
	}

	for _, provider := range providers {
		log.Info("identity_provider_enabled", slog.String("provider", provider.Name()))
	}
	return providers
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failed",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
