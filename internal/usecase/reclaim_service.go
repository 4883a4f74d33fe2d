package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
)

// DefaultMaxRetries is the default number of attempts before a reclaim task is dropped.
const DefaultMaxRetries = 3

// ReclaimServiceConfig holds configuration for ReclaimService.
type ReclaimServiceConfig struct {
	MaxRetries int
}

// DefaultReclaimServiceConfig returns the default configuration.
func DefaultReclaimServiceConfig() ReclaimServiceConfig {
	return ReclaimServiceConfig{MaxRetries: DefaultMaxRetries}
}

// ReclaimService deletes remote assets that no video record points at.
type ReclaimService interface {
	// ProcessTask returns nil on success and when the task is dropped after
	// MaxRetries attempts. Any other error asks the queue to retry.
	ProcessTask(ctx context.Context, task repository.ReclaimTask) error
}

type reclaimService struct {
	blobs      repository.BlobStore
	maxRetries int
}

// NewReclaimService creates a new ReclaimService instance.
func NewReclaimService(blobs repository.BlobStore, cfg ReclaimServiceConfig) ReclaimService {
	return &reclaimService{
		blobs:      blobs,
		maxRetries: cfg.MaxRetries,
	}
}

func (s *reclaimService) ProcessTask(ctx context.Context, task repository.ReclaimTask) error {
	if task.RetryCount >= s.maxRetries {
		slog.Error("dropping reclaim task after max retries; assets need manual cleanup",
			"asset_ids", task.AssetIDs,
			"reason", task.Reason,
			"video_id", task.VideoID,
			"retry_count", task.RetryCount,
		)
		metrics.ReclaimTasksTotal.WithLabelValues(metrics.ReclaimDropped).Inc()
		return nil
	}

	var errs []error
	for _, id := range task.AssetIDs {
		if err := s.blobs.Delete(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", id, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		slog.Warn("reclaim task failed, will retry",
			"asset_ids", task.AssetIDs,
			"retry_count", task.RetryCount,
			"error", err,
		)
		metrics.ReclaimTasksTotal.WithLabelValues(metrics.ReclaimRetried).Inc()
		return err
	}

	slog.Info("reclaimed orphaned assets",
		"asset_ids", task.AssetIDs,
		"reason", task.Reason,
	)
	metrics.ReclaimTasksTotal.WithLabelValues(metrics.ReclaimSuccess).Inc()
	return nil
}
