package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
)

// RelationService flips subscription and like relations.
//
// A toggle reads the relation and then inserts or deletes it. Two concurrent
// first toggles on the same key both see "absent"; the unique index lets one
// insert win and the other fails with ErrDuplicateRelation (Conflict). Two
// concurrent toggles that both see "present" race on the delete and the loser
// gets ErrRelationNotFound (NotFound). Callers retry in both cases.
type RelationService interface {
	ToggleSubscription(ctx context.Context, actorID, channelID uuid.UUID) (*model.ToggleResult, error)
	ToggleLike(ctx context.Context, actorID uuid.UUID, kind model.TargetKind, targetID uuid.UUID) (*model.ToggleResult, error)
}

type relationService struct {
	repo repository.RelationRepository
}

// NewRelationService creates a new RelationService instance.
func NewRelationService(repo repository.RelationRepository) RelationService {
	return &relationService{repo: repo}
}

func (s *relationService) ToggleSubscription(ctx context.Context, actorID, channelID uuid.UUID) (*model.ToggleResult, error) {
	return s.toggle(ctx, actorID, model.TargetChannel, channelID)
}

func (s *relationService) ToggleLike(ctx context.Context, actorID uuid.UUID, kind model.TargetKind, targetID uuid.UUID) (*model.ToggleResult, error) {
	if !kind.IsLikeable() {
		return nil, model.ErrNotLikeable
	}
	return s.toggle(ctx, actorID, kind, targetID)
}

func (s *relationService) toggle(ctx context.Context, actorID uuid.UUID, kind model.TargetKind, targetID uuid.UUID) (*model.ToggleResult, error) {
	key, err := model.NewRelationKey(actorID, kind, targetID)
	if err != nil {
		return nil, err
	}

	result, err := s.flip(ctx, key)
	recordToggle(kind, result, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *relationService) flip(ctx context.Context, key model.RelationKey) (*model.ToggleResult, error) {
	existing, err := s.repo.FindByKey(ctx, key)
	switch {
	case err == nil:
		// Present: the observed state must match the performed action, so a
		// delete that lost a race is reported rather than treated as success.
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("remove %s relation: %w", key.TargetKind, err)
		}
		return &model.ToggleResult{State: model.ToggleRemoved, Record: existing}, nil

	case errors.Is(err, repository.ErrRelationNotFound):
		rel := model.NewRelation(key)
		if err := s.repo.Insert(ctx, rel); err != nil {
			return nil, fmt.Errorf("create %s relation: %w", key.TargetKind, err)
		}
		return &model.ToggleResult{State: model.ToggleCreated, Record: rel}, nil

	default:
		return nil, fmt.Errorf("find %s relation: %w", key.TargetKind, err)
	}
}

func recordToggle(kind model.TargetKind, result *model.ToggleResult, err error) {
	outcome := metrics.ToggleError
	switch {
	case err == nil:
		outcome = string(result.State)
	case errors.Is(err, repository.ErrDuplicateRelation):
		outcome = metrics.ToggleConflict
	case errors.Is(err, repository.ErrRelationNotFound):
		outcome = metrics.ToggleNotFound
	}
	metrics.RelationTogglesTotal.WithLabelValues(kind.String(), outcome).Inc()
}
