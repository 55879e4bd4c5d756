package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/stats-gateway/internal/config"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/internal/leaders"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/internal/logger"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/internal/middleware"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/internal/providers/nbalive"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/internal/providers/nbastats"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/internal/publisher"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/internal/retry"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/contracts"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "stats-gateway: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	flag.Parse()

	// .env is optional; only local development has one
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log, "stats-gateway")
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() {
		// stdout sync fails with EINVAL on some platforms; not worth reporting
		_ = log.Sync()
	}()

	stats := nbastats.New(nbastats.Options{
		BaseURL:           cfg.Upstream.StatsBaseURL,
		Season:            cfg.Upstream.Season,
		SeasonType:        cfg.Upstream.SeasonType,
		Timeout:           cfg.Upstream.Timeout,
		RequestsPerSecond: cfg.Upstream.RequestsPerSecond,
		Burst:             cfg.Upstream.Burst,
		MaxAttempts:       cfg.Upstream.MaxAttempts,
		RetryDelay:        cfg.Upstream.RetryDelay,
	}, log)

	live := nbalive.New(cfg.Upstream.LiveBaseURL, cfg.Upstream.Timeout,
		retry.NewPolicy(cfg.Upstream.MaxAttempts, cfg.Upstream.RetryDelay), log)

	var pub contracts.ScoreboardPublisher
	if cfg.PublishingEnabled() {
		redisOpts, perr := redis.ParseURL(cfg.Redis.URL)
		if perr != nil {
			return fmt.Errorf("parsing Redis URL: %w", perr)
		}
		redisClient := redis.NewClient(redisOpts)
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()

		// publishing is best effort, so an unreachable Redis is not fatal
		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Upstream.Timeout)
		if perr := redisClient.Ping(pingCtx).Err(); perr != nil {
			log.Warn("redis unreachable, snapshots will be dropped until it recovers", zap.Error(perr))
		} else {
			log.Info("connected to redis", zap.String("stream", cfg.Redis.Stream))
		}
		cancel()

		pub = publisher.NewStreamPublisher(redisClient, cfg.Redis.Stream, cfg.Redis.MaxLen)
	}

	svc := leaders.NewService(stats, leaders.NewRegistry(), cfg.Leaders.Limit, log)
	handler := handlers.NewHandler(svc, live, pub, log)

	// Setup router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	handler.Mount(r)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("stats gateway listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("season", stats.Season()),
			zap.Int("leaders_limit", cfg.Leaders.Limit),
			zap.Bool("publishing", pub != nil))

		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-shutdown:
		log.Info("shutting down", zap.String("signal", sig.String()))

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("graceful shutdown failed", zap.Error(err))
			if cerr := srv.Close(); cerr != nil {
				return multierr.Combine(err, cerr)
			}
		}
	}

	handler.Wait()
	log.Info("shutdown complete")
	return nil
}
