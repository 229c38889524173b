package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/campusbot/internal/config"
	dbRedis "github.com/kailas-cloud/campusbot/internal/db/redis"
	"github.com/kailas-cloud/campusbot/internal/metrics"
	entityrepo "github.com/kailas-cloud/campusbot/internal/repository/entity"
	sessionrepo "github.com/kailas-cloud/campusbot/internal/repository/session"
	chiTransport "github.com/kailas-cloud/campusbot/internal/transport/chi"
	cataloguc "github.com/kailas-cloud/campusbot/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/campusbot/internal/usecase/health"
	janitoruc "github.com/kailas-cloud/campusbot/internal/usecase/janitor"
	"github.com/kailas-cloud/campusbot/internal/version"
)

func newServeCmd(env *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *env)
		},
	}
}

func runServe(ctx context.Context, env string) error {
	cfg, logger, err := bootstrap(env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting campusbot API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("redis_addrs", cfg.Redis.Addrs),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openEntityStore(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	tables, err := entityrepo.NewTables(db)
	if err != nil {
		return fmt.Errorf("map entity tables: %w", err)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Redis.Addrs,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("create session store: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, config.Seconds(cfg.Redis.ReadinessTimeout)); err != nil {
		return fmt.Errorf("session store not ready: %w", err)
	}
	logger.Info("Connected to session store")

	// Register metrics explicitly (no init())
	metrics.Register()

	sessions := sessionrepo.New(store, cfg.Router.HistoryWindow)

	p, err := buildPipeline(ctx, cfg, tables, sessions, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	catalog := cataloguc.New(logger)
	registerCatalog(catalog, tables)

	healthSvc := healthuc.New(db, store, p.generative)

	var limiter *chiTransport.RateLimiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = chiTransport.NewRateLimiter(chiTransport.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		})
	}

	server := chiTransport.NewServer(p.router, sessions, catalog, healthSvc, chiTransport.Options{
		AdminKeys:   cfg.Auth.APIKeys,
		RateLimiter: limiter,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadTimeout:       config.Seconds(cfg.HTTP.ReadTimeoutSec),
		ReadHeaderTimeout: config.Seconds(cfg.HTTP.ReadTimeoutSec),
		WriteTimeout:      config.Seconds(cfg.HTTP.WriteTimeoutSec),
	}

	sweeper := janitoruc.New(sessions,
		config.Seconds(cfg.Session.SweepIntervalSec),
		config.Seconds(cfg.Session.InactiveAfterSec),
		logger,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), config.Seconds(cfg.HTTP.ShutdownSec))
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	g.Go(func() error { return sweeper.Run(gctx) })
	if limiter != nil {
		g.Go(func() error { return limiter.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return err
	}

	logger.Info("Server stopped gracefully")
	return nil
}
