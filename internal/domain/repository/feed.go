package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// FeedRepository answers the joined, read-only views.
//
// Every list is ordered newest first with ties broken by insertion order,
// except the video listings, which follow the given model.VideoSort.
// Rows whose join target no longer exists are dropped, not reported.
// Paginated variants also return the total number of matching rows.
type FeedRepository interface {
	ListChannelSubscribers(ctx context.Context, channelID uuid.UUID, p model.Pagination) ([]model.ProfileSummary, int64, error)
	ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID, p model.Pagination) ([]model.ProfileSummary, int64, error)
	ListLikedVideos(ctx context.Context, actorID uuid.UUID) ([]model.VideoSummary, error)
	ListVideoComments(ctx context.Context, videoID uuid.UUID, p model.Pagination) ([]model.CommentView, int64, error)
	ListOwnerVideos(ctx context.Context, ownerID uuid.UUID, sort model.VideoSort, p model.Pagination) ([]*model.Video, int64, error)
	ListAllVideos(ctx context.Context, sort model.VideoSort, p model.Pagination) ([]*model.Video, int64, error)
	ListUserTweets(ctx context.Context, userID uuid.UUID) ([]model.TweetView, error)
}

// StatsRepository computes the per-owner aggregates behind the dashboard.
type StatsRepository interface {
	CountVideos(ctx context.Context, ownerID uuid.UUID) (int64, error)
	CountSubscribers(ctx context.Context, ownerID uuid.UUID) (int64, error)
	// CountLikesReceived counts likes on videos owned by ownerID.
	CountLikesReceived(ctx context.Context, ownerID uuid.UUID) (int64, error)
	SumViews(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
