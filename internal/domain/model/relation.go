package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/apperr"
)

// TargetKind identifies what a relation points at.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
	// TargetChannel is a subscription; the target id is an account id.
	TargetChannel TargetKind = "channel"
)

func (k TargetKind) IsValid() bool {
	switch k {
	case TargetVideo, TargetComment, TargetTweet, TargetChannel:
		return true
	default:
		return false
	}
}

// IsLikeable reports whether the kind can be the target of a like.
func (k TargetKind) IsLikeable() bool {
	return k == TargetVideo || k == TargetComment || k == TargetTweet
}

func (k TargetKind) String() string {
	return string(k)
}

var (
	ErrInvalidActorID    = apperr.New(apperr.InvalidArgument, "actor ID must be a valid identifier")
	ErrInvalidTargetID   = apperr.New(apperr.InvalidArgument, "target ID must be a valid identifier")
	ErrInvalidTargetKind = apperr.New(apperr.InvalidArgument, "target kind is not supported")
	ErrNotLikeable       = apperr.New(apperr.InvalidArgument, "target kind cannot be liked")
)

// RelationKey is the unique (actor, kind, target) triple of a relation.
type RelationKey struct {
	ActorID    uuid.UUID
	TargetKind TargetKind
	TargetID   uuid.UUID
}

// NewRelationKey validates and builds a key.
func NewRelationKey(actorID uuid.UUID, kind TargetKind, targetID uuid.UUID) (RelationKey, error) {
	if actorID == uuid.Nil {
		return RelationKey{}, ErrInvalidActorID
	}
	if !kind.IsValid() {
		return RelationKey{}, ErrInvalidTargetKind
	}
	if targetID == uuid.Nil {
		return RelationKey{}, ErrInvalidTargetID
	}
	return RelationKey{ActorID: actorID, TargetKind: kind, TargetID: targetID}, nil
}

// Relation is a directed edge from an actor to one target. Its existence is the
// liked/subscribed state; relations are never updated in place.
type Relation struct {
	ID uuid.UUID
	RelationKey
	CreatedAt time.Time
}

// NewRelation creates a relation for a validated key.
func NewRelation(key RelationKey) *Relation {
	return &Relation{
		ID:          uuid.New(),
		RelationKey: key,
		CreatedAt:   time.Now(),
	}
}

// ToggleState reports which way a toggle went.
type ToggleState string

const (
	ToggleCreated ToggleState = "created"
	ToggleRemoved ToggleState = "removed"
)

// ToggleResult is the outcome of a toggle. Record is the created relation, or
// the one that was removed.
type ToggleResult struct {
	State  ToggleState
	Record *Relation
}
