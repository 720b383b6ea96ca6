package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/feedsense-backend/internal/adapter/postgres"
	"github.com/heartmarshall/feedsense-backend/internal/adapter/postgres/event"
	"github.com/heartmarshall/feedsense-backend/internal/adapter/postgres/post"
	"github.com/heartmarshall/feedsense-backend/internal/adapter/postgres/profile"
	"github.com/heartmarshall/feedsense-backend/internal/adapter/provider/oracle"
	"github.com/heartmarshall/feedsense-backend/internal/adapter/provider/platform"
	"github.com/heartmarshall/feedsense-backend/internal/auth"
	"github.com/heartmarshall/feedsense-backend/internal/config"
	"github.com/heartmarshall/feedsense-backend/internal/metrics"
	"github.com/heartmarshall/feedsense-backend/internal/service/behavior"
	"github.com/heartmarshall/feedsense-backend/internal/service/feed"
	"github.com/heartmarshall/feedsense-backend/internal/service/normalize"
	"github.com/heartmarshall/feedsense-backend/internal/service/ranking"
	"github.com/heartmarshall/feedsense-backend/internal/transport/middleware"
	"github.com/heartmarshall/feedsense-backend/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, connects the
// database, applies migrations when enabled, wires the services and serves
// HTTP until ctx is cancelled or SIGINT/SIGTERM arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application", append(VersionAttrs(),
		slog.String("log_level", cfg.Log.Level),
		slog.String("cache_backend", cfg.Cache.Backend),
		slog.String("oracle_backend", cfg.Oracle.Backend),
	)...)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied", slog.Int("count", applied))
	}

	cache, cachePinger, err := openCache(ctx, cfg.Cache, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Error("close cache", slog.String("error", err.Error()))
		}
	}()

	oracleClient, err := oracle.New(logger, cfg.Oracle)
	if err != nil {
		return fmt.Errorf("oracle: %w", err)
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.EventsPerMinute > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.EventsPerMinute, time.Minute)
		defer limiter.Stop()
	}

	components := map[string]rest.Pinger{"database": pool}
	if cachePinger != nil {
		components["cache"] = cachePinger
	}

	handler, drain := buildHandler(cfg, logger, pool, cache, oracleClient, limiter, components)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		if err := drain(shutdownCtx); err != nil {
			logger.Warn("summary updates still running at shutdown", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}

// buildHandler wires repositories, services and transport into the root
// handler. A nil limiter disables ingestion rate limiting. The returned drain
// waits for background summary updates.
func buildHandler(
	cfg *config.Config,
	logger *slog.Logger,
	pool *pgxpool.Pool,
	cache kvCache,
	oracleClient *oracle.Client,
	limiter *middleware.RateLimiter,
	components map[string]rest.Pinger,
) (http.Handler, func(context.Context) error) {
	// Repositories.
	eventRepo := event.New(pool)
	postRepo := post.New(pool)
	profileRepo := profile.New(pool, auth.NewSealer(cfg.Auth.CredentialsKey))

	// External clients.
	platformClient := platform.NewClient(logger, cfg.Platforms.BaseURLs(), cfg.Platforms.RatePerSecond)

	// Services.
	behaviorSvc := behavior.NewService(logger, eventRepo, cache, profileRepo, behavior.Config{
		CacheTTL:   cfg.Summary.CacheTTL,
		FutureSkew: cfg.Summary.FutureSkew,
		Params: behavior.Params{
			SessionGap:    cfg.Summary.SessionGap,
			FastDwell:     cfg.Summary.FastDwell,
			SlowDwell:     cfg.Summary.SlowDwell,
			DeepDiveDwell: cfg.Summary.DeepDiveDwell,
		},
	})
	normalizeSvc := normalize.NewService(logger)
	rankingSvc := ranking.NewService(logger, oracleClient, cache, postRepo, ranking.Config{
		CacheTTL:            cfg.Ranking.CacheTTL,
		OracleTimeout:       cfg.Ranking.OracleTimeout,
		OracleMaxCandidates: cfg.Ranking.OracleMaxCandidates,
		ExplainTopN:         cfg.Ranking.ExplainTopN,
		RecencyHorizonHours: cfg.Ranking.RecencyHorizonHours,
		Blocklist:           cfg.Ranking.Blocklist,
	})
	feedSvc := feed.NewService(
		logger, profileRepo, platformClient, normalizeSvc, behaviorSvc, rankingSvc,
		feed.StaticRules{Blocklist: cfg.Ranking.Blocklist, BoostTags: cfg.Ranking.BoostTags},
		feed.Config{
			FetchTimeout:     cfg.Feed.FetchTimeout,
			PerPlatformLimit: cfg.Feed.PerPlatformLimit,
			DefaultLimit:     cfg.Feed.DefaultLimit,
			MaxLimit:         cfg.Feed.MaxLimit,
		},
	)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	var ingest middleware.Middleware
	if limiter != nil {
		ingest = limiter.Limit()
	}

	mux := rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(BuildVersion(), components),
		Feed:     rest.NewFeedHandler(feedSvc, logger),
		Behavior: rest.NewBehaviorHandler(behaviorSvc, logger),
		Format:   rest.NewFormatHandler(normalizeSvc, logger),
		Metrics:  metrics.Handler(),
	}, rest.RouterOptions{
		API:    middleware.Chain(middleware.Session(), middleware.Auth(tokens)),
		Ingest: ingest,
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)
	return handler, behaviorSvc.Drain
}
