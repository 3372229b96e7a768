// Package main runs the ledger event worker. It consumes ledger events and
// drops cached valuations of investments changed by any API instance.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/usecase/investment"
	"github.com/finance-tracker/ledger/internal/integration/cache"
	"github.com/finance-tracker/ledger/internal/integration/messaging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Worker exited properly")
}

func run(cfg *config.Config) error {
	if cfg.AMQP.URL == "" {
		return errors.New("AMQP_URL is required")
	}
	if cfg.Redis.URL == "" {
		return errors.New("REDIS_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	client := redis.NewClient(opts)
	defer client.Close()

	invalidate := investment.NewInvalidateValuationsUseCase(
		cache.NewValuationCache(client, cfg.Redis.ValuationTTL),
	)

	slog.Info("Starting ledger event worker",
		"exchange", cfg.AMQP.Exchange,
		"queue", cfg.AMQP.Queue,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := messaging.ConsumeWithReconnect(gctx, cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue, invalidate.Handle)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	return g.Wait()
}
