package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/infrastructure/cache"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
)

type CachedVideoServiceConfig struct {
	CacheTTL time.Duration
}

func DefaultCachedVideoServiceConfig() CachedVideoServiceConfig {
	return CachedVideoServiceConfig{CacheTTL: 5 * time.Minute}
}

// cachedVideoService serves GetVideo from the cache when it can and drops the
// cached record after every mutation, whether or not the mutation succeeded.
type cachedVideoService struct {
	VideoService

	cache  cache.VideoCache
	ttl    time.Duration
	flight singleflight.Group
}

// NewCachedVideoService wraps delegate. PublishVideo passes straight through
// since a new record has nothing cached yet.
func NewCachedVideoService(delegate VideoService, videoCache cache.VideoCache, cfg CachedVideoServiceConfig) VideoService {
	return &cachedVideoService{
		VideoService: delegate,
		cache:        videoCache,
		ttl:          cfg.CacheTTL,
	}
}

func (s *cachedVideoService) UpdateVideo(ctx context.Context, input UpdateVideoInput) (*model.Video, error) {
	defer s.forget(ctx, input.VideoID)
	return s.VideoService.UpdateVideo(ctx, input)
}

func (s *cachedVideoService) DeleteVideo(ctx context.Context, actorID, videoID uuid.UUID) error {
	defer s.forget(ctx, videoID)
	return s.VideoService.DeleteVideo(ctx, actorID, videoID)
}

func (s *cachedVideoService) TogglePublishStatus(ctx context.Context, actorID, videoID uuid.UUID) (*model.Video, error) {
	defer s.forget(ctx, videoID)
	return s.VideoService.TogglePublishStatus(ctx, actorID, videoID)
}

func (s *cachedVideoService) GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	v, err, shared := s.flight.Do(videoID.String(), func() (any, error) {
		return s.lookup(ctx, videoID)
	})

	result := metrics.SingleflightInitiated
	if shared {
		result = metrics.SingleflightShared
	}
	metrics.SingleflightRequestsTotal.WithLabelValues(result).Inc()

	if err != nil {
		return nil, err
	}
	// callers sharing a result must not see each other's mutations
	video := *v.(*model.Video)
	return &video, nil
}

func (s *cachedVideoService) lookup(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	cached, err := s.cache.Get(ctx, videoID)
	switch {
	case err != nil:
		cacheOp(metrics.CacheOpGet, metrics.CacheStatusError)
		slog.WarnContext(ctx, "video cache read failed", "video_id", videoID, "error", err)
	case cached != nil:
		cacheOp(metrics.CacheOpGet, metrics.CacheStatusHit)
		return cached, nil
	default:
		cacheOp(metrics.CacheOpGet, metrics.CacheStatusMiss)
	}

	video, err := s.VideoService.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, video, s.ttl); err != nil {
		cacheOp(metrics.CacheOpSet, metrics.CacheStatusError)
		slog.WarnContext(ctx, "video cache write failed", "video_id", videoID, "error", err)
	} else {
		cacheOp(metrics.CacheOpSet, metrics.CacheStatusSuccess)
	}
	return video, nil
}

// forget runs after the request may already be cancelled.
func (s *cachedVideoService) forget(ctx context.Context, videoID uuid.UUID) {
	if err := s.cache.Delete(context.WithoutCancel(ctx), videoID); err != nil {
		cacheOp(metrics.CacheOpDelete, metrics.CacheStatusError)
		slog.WarnContext(ctx, "video cache invalidation failed", "video_id", videoID, "error", err)
		return
	}
	cacheOp(metrics.CacheOpDelete, metrics.CacheStatusSuccess)
}

func cacheOp(op, status string) {
	metrics.CacheOperationsTotal.WithLabelValues(op, status, metrics.CacheTypeRedis).Inc()
}
