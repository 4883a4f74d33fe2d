package model

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestTargetKind_IsValid(t *testing.T) {
	tests := []struct {
		name string
		kind TargetKind
		want bool
	}{
		{"video is valid", TargetVideo, true},
		{"comment is valid", TargetComment, true},
		{"tweet is valid", TargetTweet, true},
		{"channel is valid", TargetChannel, true},
		{"empty string is invalid", TargetKind(""), false},
		{"unknown kind is invalid", TargetKind("playlist"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.want {
				t.Errorf("TargetKind.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTargetKind_IsLikeable(t *testing.T) {
	for _, k := range []TargetKind{TargetVideo, TargetComment, TargetTweet} {
		if !k.IsLikeable() {
			t.Errorf("%s should be likeable", k)
		}
	}
	if TargetChannel.IsLikeable() {
		t.Error("channel should not be likeable")
	}
}

func TestNewRelationKey(t *testing.T) {
	actor := uuid.New()
	target := uuid.New()

	tests := []struct {
		name     string
		actorID  uuid.UUID
		kind     TargetKind
		targetID uuid.UUID
		wantErr  error
	}{
		{"valid key", actor, TargetVideo, target, nil},
		{"nil actor", uuid.Nil, TargetVideo, target, ErrInvalidActorID},
		{"nil target", actor, TargetTweet, uuid.Nil, ErrInvalidTargetID},
		{"invalid kind", actor, TargetKind("bogus"), target, ErrInvalidTargetKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := NewRelationKey(tt.actorID, tt.kind, tt.targetID)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewRelationKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if key.ActorID != tt.actorID || key.TargetKind != tt.kind || key.TargetID != tt.targetID {
				t.Errorf("NewRelationKey() = %+v", key)
			}
		})
	}
}

func TestNewRelation(t *testing.T) {
	key, _ := NewRelationKey(uuid.New(), TargetChannel, uuid.New())

	rel := NewRelation(key)

	if rel.ID == uuid.Nil {
		t.Error("NewRelation() should generate non-nil ID")
	}
	if rel.RelationKey != key {
		t.Errorf("NewRelation() key = %+v, want %+v", rel.RelationKey, key)
	}
	if rel.CreatedAt.IsZero() {
		t.Error("NewRelation() should set CreatedAt")
	}
}
