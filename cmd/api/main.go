// Package main is the entry point for the ledger API server.
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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/infra/db"
	"github.com/finance-tracker/ledger/internal/infra/dependency"
	"github.com/finance-tracker/ledger/internal/integration/cache"
	"github.com/finance-tracker/ledger/internal/integration/messaging"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	slog.Info("Starting ledger API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
	)

	if err := run(cfg); err != nil {
		slog.Error("API stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server exited properly")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		return err
	}
	slog.Info("Database migrations completed successfully")

	ext := dependency.Externals{DBHealthChecker: database.HealthCheck}

	if cfg.Redis.URL != "" {
		client, err := newRedisClient(cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		ext.ValuationCache = cache.NewValuationCache(client, cfg.Redis.ValuationTTL)
		ext.CacheHealthChecker = func() bool {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx).Err() == nil
		}
		slog.Info("Valuation cache enabled", "ttl", cfg.Redis.ValuationTTL)
	} else {
		slog.Warn("REDIS_URL not set, valuation cache disabled")
	}

	if cfg.AMQP.URL != "" {
		client, err := messaging.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
		if err != nil {
			return fmt.Errorf("failed to connect to message broker: %w", err)
		}
		defer client.Close()

		ext.Publisher = client
		slog.Info("Ledger events enabled", "exchange", cfg.AMQP.Exchange)
	} else {
		slog.Warn("AMQP_URL not set, ledger events disabled")
	}

	injector := dependency.NewInjector(cfg, database.DB(), ext)
	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return injector.LoginRateLimiter.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func newRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	return redis.NewClient(opts), nil
}
