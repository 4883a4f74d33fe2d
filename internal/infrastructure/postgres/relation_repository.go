package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// RelationRepository implements repository.RelationRepository using PostgreSQL.
// The relations table carries UNIQUE (actor_id, target_kind, target_id).
type RelationRepository struct {
	db DBTX
}

// NewRelationRepository creates a new RelationRepository instance.
func NewRelationRepository(db DBTX) *RelationRepository {
	return &RelationRepository{db: db}
}

// FindByKey returns the relation for key.
func (r *RelationRepository) FindByKey(ctx context.Context, key model.RelationKey) (*model.Relation, error) {
	const query = `
		SELECT id, created_at
		FROM relations
		WHERE actor_id = $1 AND target_kind = $2 AND target_id = $3
	`

	rel := model.Relation{RelationKey: key}
	err := r.db.QueryRow(ctx, query, key.ActorID, key.TargetKind.String(), key.TargetID).
		Scan(&rel.ID, &rel.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrRelationNotFound
		}
		return nil, fmt.Errorf("failed to find relation: %w", err)
	}

	return &rel, nil
}

// Insert creates the relation. The unique index settles concurrent inserts.
func (r *RelationRepository) Insert(ctx context.Context, rel *model.Relation) error {
	const query = `
		INSERT INTO relations (id, actor_id, target_kind, target_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		rel.ID,
		rel.ActorID,
		rel.TargetKind.String(),
		rel.TargetID,
		rel.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateRelation
		}
		return fmt.Errorf("failed to insert relation: %w", err)
	}

	return nil
}

// Delete removes the relation by record id.
func (r *RelationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM relations WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete relation: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrRelationNotFound
	}

	return nil
}

// Compile-time verification that RelationRepository implements repository.RelationRepository.
var _ repository.RelationRepository = (*RelationRepository)(nil)
