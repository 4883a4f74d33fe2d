package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// FeedRepository implements repository.FeedRepository using PostgreSQL.
//
// Every feed is one INNER JOIN, so rows whose counterpart was deleted drop out
// of both the page and its total. Ordering is created_at DESC, seq ASC where
// seq is the table's insertion sequence. Video listings are the exception:
// the owner is LEFT JOINed and the order comes from model.VideoSort.
type FeedRepository struct {
	db DBTX
}

// NewFeedRepository creates a new FeedRepository instance.
func NewFeedRepository(db DBTX) *FeedRepository {
	return &FeedRepository{db: db}
}

// ListChannelSubscribers lists the profiles subscribed to channelID.
func (r *FeedRepository) ListChannelSubscribers(ctx context.Context, channelID uuid.UUID, p model.Pagination) ([]model.ProfileSummary, int64, error) {
	const from = `
		FROM relations r
		INNER JOIN users u ON u.id = r.actor_id
		WHERE r.target_kind = 'channel' AND r.target_id = $1
	`
	const list = `SELECT u.username, u.full_name, u.avatar` + from +
		`ORDER BY r.created_at DESC, r.seq ASC LIMIT $2 OFFSET $3`

	return listPage(ctx, r.db, "channel subscribers", `SELECT COUNT(*)`+from, list, p, scanProfile, channelID)
}

// ListSubscribedChannels lists the channels subscriberID subscribes to.
func (r *FeedRepository) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID, p model.Pagination) ([]model.ProfileSummary, int64, error) {
	const from = `
		FROM relations r
		INNER JOIN users u ON u.id = r.target_id
		WHERE r.target_kind = 'channel' AND r.actor_id = $1
	`
	const list = `SELECT u.username, u.full_name, u.avatar` + from +
		`ORDER BY r.created_at DESC, r.seq ASC LIMIT $2 OFFSET $3`

	return listPage(ctx, r.db, "subscribed channels", `SELECT COUNT(*)`+from, list, p, scanProfile, subscriberID)
}

// ListLikedVideos lists every video actorID likes, most recent like first.
func (r *FeedRepository) ListLikedVideos(ctx context.Context, actorID uuid.UUID) ([]model.VideoSummary, error) {
	const query = `
		SELECT v.id, v.title, v.description, v.asset_url, v.thumbnail_url,
			v.duration_seconds, v.view_count, v.created_at, u.id, u.username, u.avatar
		FROM relations r
		INNER JOIN videos v ON v.id = r.target_id
		INNER JOIN users u ON u.id = v.owner_id
		WHERE r.target_kind = 'video' AND r.actor_id = $1
		ORDER BY r.created_at DESC, r.seq ASC
	`

	return listAll(ctx, r.db, "liked videos", query, scanVideoSummary, actorID)
}

// ListVideoComments lists the comments on videoID with their authors.
func (r *FeedRepository) ListVideoComments(ctx context.Context, videoID uuid.UUID, p model.Pagination) ([]model.CommentView, int64, error) {
	const from = `
		FROM comments c
		INNER JOIN users u ON u.id = c.owner_id
		WHERE c.video_id = $1
	`
	const list = `SELECT c.id, c.content, c.created_at, u.id, u.username, u.avatar` + from +
		`ORDER BY c.created_at DESC, c.seq ASC LIMIT $2 OFFSET $3`

	return listPage(ctx, r.db, "video comments", `SELECT COUNT(*)`+from, list, p, scanCommentView, videoID)
}

// ListOwnerVideos lists ownerID's videos, published or not.
func (r *FeedRepository) ListOwnerVideos(ctx context.Context, ownerID uuid.UUID, order model.VideoSort, p model.Pagination) ([]*model.Video, int64, error) {
	const count = `SELECT COUNT(*) FROM videos WHERE owner_id = $1`
	list := `SELECT ` + ownedVideoColumns + ownedVideoFrom +
		` WHERE v.owner_id = $1 ORDER BY ` + videoOrderBy(order) + ` LIMIT $2 OFFSET $3`

	return listPage(ctx, r.db, "owner videos", count, list, p, scanOwnedVideo, ownerID)
}

// ListAllVideos lists every video.
func (r *FeedRepository) ListAllVideos(ctx context.Context, order model.VideoSort, p model.Pagination) ([]*model.Video, int64, error) {
	const count = `SELECT COUNT(*) FROM videos`
	list := `SELECT ` + ownedVideoColumns + ownedVideoFrom +
		` ORDER BY ` + videoOrderBy(order) + ` LIMIT $1 OFFSET $2`

	return listPage(ctx, r.db, "all videos", count, list, p, scanOwnedVideo)
}

// ListUserTweets lists userID's tweets, newest first.
func (r *FeedRepository) ListUserTweets(ctx context.Context, userID uuid.UUID) ([]model.TweetView, error) {
	const query = `
		SELECT t.id, t.content, t.created_at, u.id, u.username, u.avatar
		FROM tweets t
		INNER JOIN users u ON u.id = t.owner_id
		WHERE t.owner_id = $1
		ORDER BY t.created_at DESC, t.seq ASC
	`

	return listAll(ctx, r.db, "user tweets", query, scanTweetView, userID)
}

// listPage counts the matching rows, then fetches one page. The list query
// takes limit and offset as its last two parameters.
func listPage[T any](ctx context.Context, db DBTX, name, countQuery, listQuery string, p model.Pagination, scan func(pgx.Row) (T, error), args ...any) ([]T, int64, error) {
	var total int64
	if err := db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", name, err)
	}

	pageArgs := make([]any, 0, len(args)+2)
	pageArgs = append(pageArgs, args...)
	pageArgs = append(pageArgs, p.Limit, p.Offset())

	items, err := listAll(ctx, db, name, listQuery, scan, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func listAll[T any](ctx context.Context, db DBTX, name, query string, scan func(pgx.Row) (T, error), args ...any) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", name, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", name, err)
	}

	return items, nil
}

func scanProfile(row pgx.Row) (model.ProfileSummary, error) {
	var p model.ProfileSummary
	err := row.Scan(&p.Username, &p.FullName, &p.Avatar)
	return p, err
}

func scanVideoSummary(row pgx.Row) (model.VideoSummary, error) {
	var v model.VideoSummary
	err := row.Scan(
		&v.ID,
		&v.Title,
		&v.Description,
		&v.AssetURL,
		&v.ThumbnailURL,
		&v.DurationSeconds,
		&v.ViewCount,
		&v.CreatedAt,
		&v.Owner.ID,
		&v.Owner.Username,
		&v.Owner.Avatar,
	)
	return v, err
}

func scanCommentView(row pgx.Row) (model.CommentView, error) {
	var c model.CommentView
	err := row.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.Owner.ID, &c.Owner.Username, &c.Owner.Avatar)
	return c, err
}

func scanTweetView(row pgx.Row) (model.TweetView, error) {
	var t model.TweetView
	err := row.Scan(&t.ID, &t.Content, &t.CreatedAt, &t.Owner.ID, &t.Owner.Username, &t.Owner.Avatar)
	return t, err
}

var _ repository.FeedRepository = (*FeedRepository)(nil)
