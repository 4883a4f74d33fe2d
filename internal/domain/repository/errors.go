package repository

import "github.com/hszk-dev/vidshare/internal/domain/apperr"

var (
	// ErrVideoNotFound is returned when a video cannot be found.
	ErrVideoNotFound = apperr.New(apperr.NotFound, "video not found")

	// ErrDuplicateVideo is returned when attempting to create a video that already exists.
	ErrDuplicateVideo = apperr.New(apperr.Conflict, "video already exists")

	// ErrRelationNotFound is returned when a relation is absent, including when
	// a delete affected zero rows because another request removed it first.
	ErrRelationNotFound = apperr.New(apperr.NotFound, "relation not found")

	// ErrDuplicateRelation is returned when the (actor, kind, target) unique index rejects an insert.
	ErrDuplicateRelation = apperr.New(apperr.Conflict, "relation already exists")

	ErrCommentNotFound = apperr.New(apperr.NotFound, "comment not found")
	ErrTweetNotFound   = apperr.New(apperr.NotFound, "tweet not found")
)
