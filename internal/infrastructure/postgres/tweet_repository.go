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

// TweetRepository implements repository.TweetRepository using PostgreSQL.
type TweetRepository struct {
	db DBTX
}

// NewTweetRepository creates a new TweetRepository instance.
func NewTweetRepository(db DBTX) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Create(ctx context.Context, t *model.Tweet) error {
	const query = `
		INSERT INTO tweets (id, owner_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, t.ID, t.OwnerID, t.Content, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tweet: %w", err)
	}
	return nil
}

func (r *TweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	const query = `
		SELECT id, owner_id, content, created_at, updated_at
		FROM tweets
		WHERE id = $1
	`

	var t model.Tweet
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrTweetNotFound
		}
		return nil, fmt.Errorf("failed to get tweet by ID: %w", err)
	}
	return &t, nil
}

func (r *TweetRepository) Update(ctx context.Context, t *model.Tweet) error {
	const query = `UPDATE tweets SET content = $2, updated_at = $3 WHERE id = $1`

	t.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query, t.ID, t.Content, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update tweet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrTweetNotFound
	}
	return nil
}

func (r *TweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM tweets WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrTweetNotFound
	}
	return nil
}

var _ repository.TweetRepository = (*TweetRepository)(nil)
