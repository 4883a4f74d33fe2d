package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/vidshare/internal/domain/model"
)

const keyPrefix = "vidshare:video:"

// cachedVideo is the stored shape of a video record. It is kept separate from
// model.Video so the cache format only changes when this struct does.
type cachedVideo struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AssetURL    string    `json:"asset_url"`
	Thumbnail   string    `json:"thumbnail_url"`
	Duration    float64   `json:"duration_seconds"`
	Published   bool      `json:"is_published"`
	Views       int64     `json:"view_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner *cachedOwner `json:"owner,omitempty"`
}

// cachedOwner omits the id; it is always OwnerID.
type cachedOwner struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

func fromVideo(v *model.Video) cachedVideo {
	c := cachedVideo{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Title:       v.Title,
		Description: v.Description,
		AssetURL:    v.AssetURL,
		Thumbnail:   v.ThumbnailURL,
		Duration:    v.DurationSeconds,
		Published:   v.IsPublished,
		Views:       v.ViewCount,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
	if v.Owner != nil {
		c.Owner = &cachedOwner{Username: v.Owner.Username, Avatar: v.Owner.Avatar}
	}
	return c
}

func (c cachedVideo) video() *model.Video {
	v := &model.Video{
		ID:              c.ID,
		OwnerID:         c.OwnerID,
		Title:           c.Title,
		Description:     c.Description,
		AssetURL:        c.AssetURL,
		ThumbnailURL:    c.Thumbnail,
		DurationSeconds: c.Duration,
		IsPublished:     c.Published,
		ViewCount:       c.Views,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if c.Owner != nil {
		v.Owner = &model.OwnerSummary{ID: c.OwnerID, Username: c.Owner.Username, Avatar: c.Owner.Avatar}
	}
	return v
}

// RedisVideoCache stores video records as JSON strings with a per-entry TTL.
type RedisVideoCache struct {
	client *redis.Client
}

func NewRedisVideoCache(client *redis.Client) *RedisVideoCache {
	return &RedisVideoCache{client: client}
}

// Get returns nil, nil when the key is absent.
func (c *RedisVideoCache) Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	raw, err := c.client.Get(ctx, buildKey(videoID)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("redis get %s: %w", videoID, err)
	}

	var entry cachedVideo
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode cached video %s: %w", videoID, err)
	}
	if entry.ID == uuid.Nil {
		return nil, fmt.Errorf("decode cached video %s: missing id", videoID)
	}
	return entry.video(), nil
}

func (c *RedisVideoCache) Set(ctx context.Context, video *model.Video, ttl time.Duration) error {
	raw, err := json.Marshal(fromVideo(video))
	if err != nil {
		return fmt.Errorf("encode video %s: %w", video.ID, err)
	}
	if err := c.client.Set(ctx, buildKey(video.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", video.ID, err)
	}
	return nil
}

func (c *RedisVideoCache) Delete(ctx context.Context, videoID uuid.UUID) error {
	if err := c.client.Del(ctx, buildKey(videoID)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", videoID, err)
	}
	return nil
}

func (c *RedisVideoCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func buildKey(videoID uuid.UUID) string {
	return keyPrefix + videoID.String()
}

var _ VideoCache = (*RedisVideoCache)(nil)
