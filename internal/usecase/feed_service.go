package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// FeedService answers the paginated joined views.
// Pagination arguments are already normalized by model.NewPagination or
// model.ParsePagination; identifiers are validated here.
type FeedService interface {
	ListChannelSubscribers(ctx context.Context, channelID uuid.UUID, p model.Pagination) (model.Page[model.ProfileSummary], error)
	ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID, p model.Pagination) (model.Page[model.ProfileSummary], error)
	ListLikedVideos(ctx context.Context, actorID uuid.UUID) ([]model.VideoSummary, error)
	ListVideoComments(ctx context.Context, videoID uuid.UUID, p model.Pagination) (model.Page[model.CommentView], error)
	ListOwnerVideos(ctx context.Context, ownerID uuid.UUID, order model.VideoSort, p model.Pagination) (model.Page[*model.Video], error)
	ListAllVideos(ctx context.Context, order model.VideoSort, p model.Pagination) (model.Page[*model.Video], error)
	ListUserTweets(ctx context.Context, userID uuid.UUID) ([]model.TweetView, error)
}

type feedService struct {
	repo repository.FeedRepository
}

// NewFeedService creates a new FeedService instance.
func NewFeedService(repo repository.FeedRepository) FeedService {
	return &feedService{repo: repo}
}

func (s *feedService) ListChannelSubscribers(ctx context.Context, channelID uuid.UUID, p model.Pagination) (model.Page[model.ProfileSummary], error) {
	if channelID == uuid.Nil {
		return model.Page[model.ProfileSummary]{}, model.ErrInvalidTargetID
	}
	items, total, err := s.repo.ListChannelSubscribers(ctx, channelID, p)
	if err != nil {
		return model.Page[model.ProfileSummary]{}, fmt.Errorf("list channel subscribers: %w", err)
	}
	return model.NewPage(items, p, total), nil
}

func (s *feedService) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID, p model.Pagination) (model.Page[model.ProfileSummary], error) {
	if subscriberID == uuid.Nil {
		return model.Page[model.ProfileSummary]{}, model.ErrInvalidActorID
	}
	items, total, err := s.repo.ListSubscribedChannels(ctx, subscriberID, p)
	if err != nil {
		return model.Page[model.ProfileSummary]{}, fmt.Errorf("list subscribed channels: %w", err)
	}
	return model.NewPage(items, p, total), nil
}

func (s *feedService) ListLikedVideos(ctx context.Context, actorID uuid.UUID) ([]model.VideoSummary, error) {
	if actorID == uuid.Nil {
		return nil, model.ErrInvalidActorID
	}
	videos, err := s.repo.ListLikedVideos(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list liked videos: %w", err)
	}
	if videos == nil {
		videos = []model.VideoSummary{}
	}
	return videos, nil
}

func (s *feedService) ListVideoComments(ctx context.Context, videoID uuid.UUID, p model.Pagination) (model.Page[model.CommentView], error) {
	if videoID == uuid.Nil {
		return model.Page[model.CommentView]{}, model.ErrInvalidVideoID
	}
	items, total, err := s.repo.ListVideoComments(ctx, videoID, p)
	if err != nil {
		return model.Page[model.CommentView]{}, fmt.Errorf("list video comments: %w", err)
	}
	return model.NewPage(items, p, total), nil
}

func (s *feedService) ListOwnerVideos(ctx context.Context, ownerID uuid.UUID, order model.VideoSort, p model.Pagination) (model.Page[*model.Video], error) {
	if ownerID == uuid.Nil {
		return model.Page[*model.Video]{}, model.ErrInvalidOwnerID
	}
	items, total, err := s.repo.ListOwnerVideos(ctx, ownerID, order, p)
	if err != nil {
		return model.Page[*model.Video]{}, fmt.Errorf("list owner videos: %w", err)
	}
	return model.NewPage(items, p, total), nil
}

func (s *feedService) ListAllVideos(ctx context.Context, order model.VideoSort, p model.Pagination) (model.Page[*model.Video], error) {
	items, total, err := s.repo.ListAllVideos(ctx, order, p)
	if err != nil {
		return model.Page[*model.Video]{}, fmt.Errorf("list videos: %w", err)
	}
	return model.NewPage(items, p, total), nil
}

func (s *feedService) ListUserTweets(ctx context.Context, userID uuid.UUID) ([]model.TweetView, error) {
	if userID == uuid.Nil {
		return nil, model.ErrInvalidOwnerID
	}
	tweets, err := s.repo.ListUserTweets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user tweets: %w", err)
	}
	if tweets == nil {
		tweets = []model.TweetView{}
	}
	return tweets, nil
}
