package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

type mockVideoService struct {
	publishVideoFn  func(ctx context.Context, input usecase.PublishVideoInput) (*model.Video, error)
	getVideoFn      func(ctx context.Context, videoID uuid.UUID) (*model.Video, error)
	updateVideoFn   func(ctx context.Context, input usecase.UpdateVideoInput) (*model.Video, error)
	deleteVideoFn   func(ctx context.Context, actorID, videoID uuid.UUID) error
	togglePublishFn func(ctx context.Context, actorID, videoID uuid.UUID) (*model.Video, error)
}

func (m *mockVideoService) PublishVideo(ctx context.Context, input usecase.PublishVideoInput) (*model.Video, error) {
	if m.publishVideoFn != nil {
		return m.publishVideoFn(ctx, input)
	}
	return nil, nil
}

func (m *mockVideoService) GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	if m.getVideoFn != nil {
		return m.getVideoFn(ctx, videoID)
	}
	return nil, nil
}

func (m *mockVideoService) UpdateVideo(ctx context.Context, input usecase.UpdateVideoInput) (*model.Video, error) {
	if m.updateVideoFn != nil {
		return m.updateVideoFn(ctx, input)
	}
	return nil, nil
}

func (m *mockVideoService) DeleteVideo(ctx context.Context, actorID, videoID uuid.UUID) error {
	if m.deleteVideoFn != nil {
		return m.deleteVideoFn(ctx, actorID, videoID)
	}
	return nil
}

func (m *mockVideoService) TogglePublishStatus(ctx context.Context, actorID, videoID uuid.UUID) (*model.Video, error) {
	if m.togglePublishFn != nil {
		return m.togglePublishFn(ctx, actorID, videoID)
	}
	return nil, nil
}

type mockRelationService struct {
	toggleSubscriptionFn func(ctx context.Context, actorID, channelID uuid.UUID) (*model.ToggleResult, error)
	toggleLikeFn         func(ctx context.Context, actorID uuid.UUID, kind model.TargetKind, targetID uuid.UUID) (*model.ToggleResult, error)
}

func (m *mockRelationService) ToggleSubscription(ctx context.Context, actorID, channelID uuid.UUID) (*model.ToggleResult, error) {
	if m.toggleSubscriptionFn != nil {
		return m.toggleSubscriptionFn(ctx, actorID, channelID)
	}
	return nil, nil
}

func (m *mockRelationService) ToggleLike(ctx context.Context, actorID uuid.UUID, kind model.TargetKind, targetID uuid.UUID) (*model.ToggleResult, error) {
	if m.toggleLikeFn != nil {
		return m.toggleLikeFn(ctx, actorID, kind, targetID)
	}
	return nil, nil
}

// mockFeedService returns empty results unless a function is set.
type mockFeedService struct {
	listChannelSubscribersFn func(ctx context.Context, channelID uuid.UUID, p model.Pagination) (model.Page[model.ProfileSummary], error)
	listLikedVideosFn        func(ctx context.Context, actorID uuid.UUID) ([]model.VideoSummary, error)
	listVideoCommentsFn      func(ctx context.Context, videoID uuid.UUID, p model.Pagination) (model.Page[model.CommentView], error)
	listOwnerVideosFn        func(ctx context.Context, ownerID uuid.UUID, order model.VideoSort, p model.Pagination) (model.Page[*model.Video], error)
	listUserTweetsFn         func(ctx context.Context, userID uuid.UUID) ([]model.TweetView, error)
}

func (m *mockFeedService) ListChannelSubscribers(ctx context.Context, channelID uuid.UUID, p model.Pagination) (model.Page[model.ProfileSummary], error) {
	if m.listChannelSubscribersFn != nil {
		return m.listChannelSubscribersFn(ctx, channelID, p)
	}
	return model.NewPage[model.ProfileSummary](nil, p, 0), nil
}

func (m *mockFeedService) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID, p model.Pagination) (model.Page[model.ProfileSummary], error) {
	return model.NewPage[model.ProfileSummary](nil, p, 0), nil
}

func (m *mockFeedService) ListLikedVideos(ctx context.Context, actorID uuid.UUID) ([]model.VideoSummary, error) {
	if m.listLikedVideosFn != nil {
		return m.listLikedVideosFn(ctx, actorID)
	}
	return []model.VideoSummary{}, nil
}

func (m *mockFeedService) ListVideoComments(ctx context.Context, videoID uuid.UUID, p model.Pagination) (model.Page[model.CommentView], error) {
	if m.listVideoCommentsFn != nil {
		return m.listVideoCommentsFn(ctx, videoID, p)
	}
	return model.NewPage[model.CommentView](nil, p, 0), nil
}

func (m *mockFeedService) ListOwnerVideos(ctx context.Context, ownerID uuid.UUID, order model.VideoSort, p model.Pagination) (model.Page[*model.Video], error) {
	if m.listOwnerVideosFn != nil {
		return m.listOwnerVideosFn(ctx, ownerID, order, p)
	}
	return model.NewPage[*model.Video](nil, p, 0), nil
}

func (m *mockFeedService) ListAllVideos(ctx context.Context, order model.VideoSort, p model.Pagination) (model.Page[*model.Video], error) {
	return model.NewPage[*model.Video](nil, p, 0), nil
}

func (m *mockFeedService) ListUserTweets(ctx context.Context, userID uuid.UUID) ([]model.TweetView, error) {
	if m.listUserTweetsFn != nil {
		return m.listUserTweetsFn(ctx, userID)
	}
	return []model.TweetView{}, nil
}

type mockDashboardService struct {
	getChannelStatsFn func(ctx context.Context, ownerID uuid.UUID) (*model.ChannelStats, error)
}

func (m *mockDashboardService) GetChannelStats(ctx context.Context, ownerID uuid.UUID) (*model.ChannelStats, error) {
	if m.getChannelStatsFn != nil {
		return m.getChannelStatsFn(ctx, ownerID)
	}
	return &model.ChannelStats{}, nil
}

func (m *mockDashboardService) GetChannelVideos(ctx context.Context, ownerID uuid.UUID, p model.Pagination) (model.Page[*model.Video], error) {
	return model.NewPage[*model.Video](nil, p, 0), nil
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }
