package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/vidshare/internal/api"
	"github.com/hszk-dev/vidshare/internal/api/handler"
	"github.com/hszk-dev/vidshare/internal/config"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/cache"
	"github.com/hszk-dev/vidshare/internal/infrastructure/memory"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
	"github.com/hszk-dev/vidshare/internal/infrastructure/postgres"
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

// stores groups the record store ports of one driver.
type stores struct {
	videos    repository.VideoRepository
	relations repository.RelationRepository
	comments  repository.CommentRepository
	tweets    repository.TweetRepository
	feeds     repository.FeedRepository
	stats     repository.StatsRepository
	pinger    handler.Pinger
	close     func()
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Upload.TempDir, 0755); err != nil {
		return fmt.Errorf("failed to create upload temp directory: %w", err)
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

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
	logger.Info("connected to MinIO", slog.String("bucket", storageClient.Bucket()))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to Redis")
	videoCache := cache.NewRedisVideoCache(redisClient)

	// Without a broker, orphaned assets are only logged.
	var reclaimQueue repository.MessageQueue
	queueCfg := queue.DefaultClientConfig(cfg.RabbitMQ.URL())
	queueCfg.QueueName = cfg.RabbitMQ.ReclaimQueue
	queueCfg.RoutingKey = cfg.RabbitMQ.ReclaimQueue
	queueClient, err := queue.NewClient(ctx, queueCfg)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, orphaned assets will not be reclaimed",
			slog.String("error", err.Error()),
		)
	} else {
		defer queueClient.Close()
		reclaimQueue = queueClient
		logger.Info("connected to RabbitMQ", slog.String("queue", queueCfg.QueueName))
	}

	videoSvc := usecase.NewCachedVideoService(
		usecase.NewVideoService(st.videos, storageClient, reclaimQueue, usecase.DefaultVideoServiceConfig()),
		videoCache,
		usecase.CachedVideoServiceConfig{CacheTTL: cfg.Redis.CacheTTL},
	)
	feedSvc := usecase.NewFeedService(st.feeds)

	r := api.NewRouter(logger, api.Dependencies{
		Videos:    videoSvc,
		Feeds:     feedSvc,
		Relations: usecase.NewRelationService(st.relations),
		Comments:  usecase.NewCommentService(st.comments, st.videos),
		Tweets:    usecase.NewTweetService(st.tweets),
		Dashboard: usecase.NewDashboardService(st.stats, feedSvc),
		Upload: handler.UploadConfig{
			TempDir:  cfg.Upload.TempDir,
			MaxBytes: cfg.Upload.MaxBytes,
		},
		Health: map[string]handler.Pinger{
			"database":   st.pinger,
			"blob_store": storageClient,
			"cache":      videoCache,
		},
		Metrics: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.Int("port", cfg.Server.Port),
			slog.String("storage_driver", cfg.Storage.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		logger.Warn("using in-memory record store, data is lost on restart")
		m := memory.NewStore()
		return &stores{
			videos:    m.Videos(),
			relations: m.Relations(),
			comments:  m.Comments(),
			tweets:    m.Tweets(),
			feeds:     m.Feeds(),
			stats:     m.Stats(),
			pinger:    m,
			close:     func() {},
		}, nil
	}

	pgClient, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	logger.Info("connected to PostgreSQL")

	metrics.RegisterDBPoolStats(prometheus.DefaultRegisterer, func() metrics.PoolStats {
		s := pgClient.Stats()
		return metrics.PoolStats{
			AcquiredConns: s.AcquiredConns,
			IdleConns:     s.IdleConns,
			TotalConns:    s.TotalConns,
		}
	})

	db := pgClient.DB()
	return &stores{
		videos:    postgres.NewVideoRepository(db),
		relations: postgres.NewRelationRepository(db),
		comments:  postgres.NewCommentRepository(db),
		tweets:    postgres.NewTweetRepository(db),
		feeds:     postgres.NewFeedRepository(db),
		stats:     postgres.NewStatsRepository(db),
		pinger:    pgClient,
		close:     pgClient.Close,
	}, nil
}
