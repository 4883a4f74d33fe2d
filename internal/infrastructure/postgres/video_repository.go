package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

const videoColumns = `id, owner_id, title, description, asset_url, thumbnail_url,
	duration_seconds, is_published, view_count, created_at, updated_at`

// ownedVideoColumns pairs with ownedVideoFrom. The owner is a LEFT JOIN, so
// the last three columns report whether the users row was found.
const (
	ownedVideoColumns = `v.id, v.owner_id, v.title, v.description, v.asset_url, v.thumbnail_url,
	v.duration_seconds, v.is_published, v.view_count, v.created_at, v.updated_at,
	u.id IS NOT NULL, COALESCE(u.username, ''), COALESCE(u.avatar, '')`
	ownedVideoFrom = ` FROM videos v LEFT JOIN users u ON u.id = v.owner_id`
)

var videoSortColumns = map[model.VideoSortField]string{
	model.SortByCreatedAt: "v.created_at",
	model.SortByViewCount: "v.view_count",
	model.SortByDuration:  "v.duration_seconds",
}

// videoOrderBy only ever emits whitelisted column names.
func videoOrderBy(s model.VideoSort) string {
	col, ok := videoSortColumns[s.Field]
	if !ok {
		col = videoSortColumns[model.SortByCreatedAt]
	}
	dir := "ASC"
	if s.Descending {
		dir = "DESC"
	}
	return col + " " + dir + ", v.seq ASC"
}

// VideoRepository stores one row per published video.
type VideoRepository struct {
	db DBTX
}

func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	const query = `
		INSERT INTO videos (` + videoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		video.ID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.AssetURL,
		video.ThumbnailURL,
		video.DurationSeconds,
		video.IsPublished,
		video.ViewCount,
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateVideo
		}
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

// GetByID also returns the owner's summary when the account still exists.
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	const query = `SELECT ` + ownedVideoColumns + ownedVideoFrom + ` WHERE v.id = $1`

	video, err := scanOwnedVideo(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by ID: %w", err)
	}

	return video, nil
}

// Update rewrites the editable columns and bumps updated_at. The asset URL and
// duration are fixed at publish time.
func (r *VideoRepository) Update(ctx context.Context, video *model.Video) error {
	const query = `
		UPDATE videos
		SET title = $2, description = $3, thumbnail_url = $4, is_published = $5, updated_at = $6
		WHERE id = $1
	`

	video.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		video.ThumbnailURL,
		video.IsPublished,
		video.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM videos WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// scanOwnedVideo accepts pgx.Rows too, so feed queries reuse it.
func scanOwnedVideo(row pgx.Row) (*model.Video, error) {
	var (
		video    model.Video
		hasOwner bool
		owner    model.OwnerSummary
	)

	err := row.Scan(
		&video.ID,
		&video.OwnerID,
		&video.Title,
		&video.Description,
		&video.AssetURL,
		&video.ThumbnailURL,
		&video.DurationSeconds,
		&video.IsPublished,
		&video.ViewCount,
		&video.CreatedAt,
		&video.UpdatedAt,
		&hasOwner,
		&owner.Username,
		&owner.Avatar,
	)
	if err != nil {
		return nil, err
	}

	if hasOwner {
		owner.ID = video.OwnerID
		video.Owner = &owner
	}
	return &video, nil
}

var _ repository.VideoRepository = (*VideoRepository)(nil)
