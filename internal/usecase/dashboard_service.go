package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// DashboardService reports channel aggregates computed at query time.
type DashboardService interface {
	GetChannelStats(ctx context.Context, ownerID uuid.UUID) (*model.ChannelStats, error)
	GetChannelVideos(ctx context.Context, ownerID uuid.UUID, p model.Pagination) (model.Page[*model.Video], error)
}

type dashboardService struct {
	stats repository.StatsRepository
	feeds FeedService
}

// NewDashboardService creates a new DashboardService instance.
func NewDashboardService(stats repository.StatsRepository, feeds FeedService) DashboardService {
	return &dashboardService{stats: stats, feeds: feeds}
}

// GetChannelStats runs the four independent counts concurrently.
func (s *dashboardService) GetChannelStats(ctx context.Context, ownerID uuid.UUID) (*model.ChannelStats, error) {
	if ownerID == uuid.Nil {
		return nil, model.ErrInvalidOwnerID
	}

	var stats model.ChannelStats
	g, gctx := errgroup.WithContext(ctx)

	count := func(name string, dst *int64, fn func(context.Context, uuid.UUID) (int64, error)) {
		g.Go(func() error {
			n, err := fn(gctx, ownerID)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = n
			return nil
		})
	}
	count("count videos", &stats.TotalVideos, s.stats.CountVideos)
	count("count subscribers", &stats.TotalSubscribers, s.stats.CountSubscribers)
	count("count likes", &stats.TotalLikes, s.stats.CountLikesReceived)
	count("sum views", &stats.TotalViews, s.stats.SumViews)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *dashboardService) GetChannelVideos(ctx context.Context, ownerID uuid.UUID, p model.Pagination) (model.Page[*model.Video], error) {
	return s.feeds.ListOwnerVideos(ctx, ownerID, model.DefaultVideoSort(), p)
}
