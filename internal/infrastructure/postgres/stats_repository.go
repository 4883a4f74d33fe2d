package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// StatsRepository implements repository.StatsRepository using PostgreSQL.
type StatsRepository struct {
	db DBTX
}

// NewStatsRepository creates a new StatsRepository instance.
func NewStatsRepository(db DBTX) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountVideos(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return r.scalar(ctx, "videos", `SELECT COUNT(*) FROM videos WHERE owner_id = $1`, ownerID)
}

func (r *StatsRepository) CountSubscribers(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return r.scalar(ctx, "subscribers",
		`SELECT COUNT(*) FROM relations WHERE target_kind = 'channel' AND target_id = $1`, ownerID)
}

func (r *StatsRepository) CountLikesReceived(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM relations r
		INNER JOIN videos v ON v.id = r.target_id
		WHERE r.target_kind = 'video' AND v.owner_id = $1
	`
	return r.scalar(ctx, "likes", query, ownerID)
}

func (r *StatsRepository) SumViews(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return r.scalar(ctx, "views", `SELECT COALESCE(SUM(view_count), 0)::bigint FROM videos WHERE owner_id = $1`, ownerID)
}

func (r *StatsRepository) scalar(ctx context.Context, name, query string, ownerID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, query, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", name, err)
	}
	return n, nil
}

var _ repository.StatsRepository = (*StatsRepository)(nil)
