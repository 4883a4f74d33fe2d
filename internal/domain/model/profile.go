package model

import "github.com/google/uuid"

// ProfileSummary is the public-safe projection of an account.
// It never carries credentials.
type ProfileSummary struct {
	Username string
	FullName string
	Avatar   string
}

// OwnerSummary identifies the author of a comment or tweet.
type OwnerSummary struct {
	ID       uuid.UUID
	Username string
	Avatar   string
}
