// Package cache holds read-through caches in front of the record store.
package cache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// VideoCache stores whole video records by id.
//
// A miss is (nil, nil), never an error, so callers can fall back to the store
// without inspecting errors. Any error means the cache itself is unhealthy.
type VideoCache interface {
	Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error)
	Set(ctx context.Context, video *model.Video, ttl time.Duration) error
	// Delete is idempotent; dropping an absent key succeeds.
	Delete(ctx context.Context, videoID uuid.UUID) error
}
