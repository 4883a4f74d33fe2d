package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// RelationRepository persists relation edges behind a unique index on
// (actor, kind, target). It offers no atomic toggle.
type RelationRepository interface {
	// FindByKey returns the relation for key.
	// Returns nil and ErrRelationNotFound if none exists.
	FindByKey(ctx context.Context, key model.RelationKey) (*model.Relation, error)

	// Insert creates the relation.
	// Returns ErrDuplicateRelation if one already exists for the same key.
	Insert(ctx context.Context, rel *model.Relation) error

	// Delete removes the relation with the given record id.
	// Returns ErrRelationNotFound if zero records were affected.
	Delete(ctx context.Context, id uuid.UUID) error
}
