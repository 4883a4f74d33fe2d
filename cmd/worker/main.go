package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hszk-dev/vidshare/internal/config"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/probe"
	"github.com/hszk-dev/vidshare/internal/infrastructure/queue"
	"github.com/hszk-dev/vidshare/internal/infrastructure/storage"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// The worker never uploads, so the prober is never consulted.
	storageClient, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:      cfg.MinIO.Endpoint,
		AccessKey:     cfg.MinIO.AccessKey,
		SecretKey:     cfg.MinIO.SecretKey,
		Bucket:        cfg.MinIO.Bucket,
		UseSSL:        cfg.MinIO.UseSSL,
		PublicBaseURL: cfg.MinIO.PublicBaseURL,
	}, probe.NewFFprobe(probe.Config{Timeout: cfg.Probe.Timeout}))
	if err != nil {
		return fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	logger.Info("connected to MinIO")

	queueCfg := queue.DefaultClientConfig(cfg.RabbitMQ.URL())
	queueCfg.QueueName = cfg.RabbitMQ.ReclaimQueue
	queueCfg.RoutingKey = cfg.RabbitMQ.ReclaimQueue
	queueClient, err := queue.NewClient(ctx, queueCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer queueClient.Close()
	logger.Info("connected to RabbitMQ", slog.String("queue", queueCfg.QueueName))

	reclaimSvc := usecase.NewReclaimService(storageClient, usecase.ReclaimServiceConfig{
		MaxRetries: cfg.Worker.MaxRetries,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	handle := func(task repository.ReclaimTask) error {
		attrs := []any{
			slog.String("reason", task.Reason),
			slog.Any("asset_ids", task.AssetIDs),
			slog.Int("retry_count", task.RetryCount),
		}
		if err := reclaimSvc.ProcessTask(context.WithoutCancel(ctx), task); err != nil {
			logger.Error("reclaim failed", append(attrs, slog.String("error", err.Error()))...)
			return err
		}

		logger.Info("reclaim task completed", attrs...)
		return nil
	}

	logger.Info("starting worker, consuming reclaim tasks")
	done, errCh := startConsumer(ctx, queueClient, handle)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down worker", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Worker.ShutdownTimeout)
	defer shutdownCancel()

	// stop consuming new messages
	cancel()

	select {
	case <-done:
		logger.Info("all in-flight tasks completed")
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded, some tasks may not have completed")
	}

	logger.Info("worker stopped")
	return nil
}

type reclaimConsumer interface {
	ConsumeReclaimTasks(ctx context.Context, handler func(task repository.ReclaimTask) error) error
}

// startConsumer runs the consume loop in its own goroutine. The loop handles
// one delivery at a time and only checks ctx between deliveries, so done
// closing means no task is in flight.
func startConsumer(ctx context.Context, consumer reclaimConsumer, handle func(repository.ReclaimTask) error) (<-chan struct{}, <-chan error) {
	done := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		defer close(done)
		err := consumer.ConsumeReclaimTasks(ctx, handle)
		if err != nil && ctx.Err() == nil {
			errCh <- fmt.Errorf("consumer error: %w", err)
		}
	}()
	return done, errCh
}
