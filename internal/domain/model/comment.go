package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/apperr"
)

// Comment is a text reply on a video.
type Comment struct {
	ID        uuid.UUID
	VideoID   uuid.UUID
	OwnerID   uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentView is a comment joined with its author.
type CommentView struct {
	ID        uuid.UUID
	Content   string
	CreatedAt time.Time
	Owner     OwnerSummary
}

var (
	ErrEmptyContent     = apperr.New(apperr.InvalidArgument, "content is required")
	ErrContentTooLong   = apperr.New(apperr.InvalidArgument, "content exceeds maximum length of 5000 characters")
	ErrInvalidCommentID = apperr.New(apperr.InvalidArgument, "comment ID cannot be nil")
)

const maxContentLength = 5000

// NormalizeContent trims content and enforces the length rules shared by
// comments and tweets.
func NormalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if len(content) > maxContentLength {
		return "", ErrContentTooLong
	}
	return content, nil
}

// NewComment creates a comment by ownerID on videoID.
func NewComment(videoID, ownerID uuid.UUID, content string) (*Comment, error) {
	if videoID == uuid.Nil {
		return nil, ErrInvalidVideoID
	}
	if ownerID == uuid.Nil {
		return nil, ErrInvalidOwnerID
	}
	content, err := NormalizeContent(content)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Comment{
		ID:        uuid.New(),
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

var ErrNotCommentOwner = apperr.New(apperr.PermissionDenied, "only the author can modify this comment")

// IsOwnedBy reports whether userID wrote the comment.
func (c *Comment) IsOwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && c.OwnerID == userID
}

// Edit replaces the content.
func (c *Comment) Edit(content string) error {
	content, err := NormalizeContent(content)
	if err != nil {
		return err
	}
	c.Content = content
	c.UpdatedAt = time.Now()
	return nil
}
