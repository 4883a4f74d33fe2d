// Package memory is an in-process implementation of every storage port.
// It backs the memory storage driver and end-to-end tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// User is an account row. The store only reads it for joins.
type User struct {
	ID       uuid.UUID
	Username string
	FullName string
	Avatar   string
}

type relationRow struct {
	rel model.Relation
	seq int64
}

type videoRow struct {
	video model.Video
	seq   int64
}

type commentRow struct {
	comment model.Comment
	seq     int64
}

type tweetRow struct {
	tweet model.Tweet
	seq   int64
}

// Store holds all tables behind one mutex. relationIndex plays the role of
// the unique (actor, kind, target) index.
type Store struct {
	mu            sync.RWMutex
	seq           int64
	users         map[uuid.UUID]User
	relations     map[uuid.UUID]relationRow
	relationIndex map[model.RelationKey]uuid.UUID
	videos        map[uuid.UUID]videoRow
	comments      map[uuid.UUID]commentRow
	tweets        map[uuid.UUID]tweetRow
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:         make(map[uuid.UUID]User),
		relations:     make(map[uuid.UUID]relationRow),
		relationIndex: make(map[model.RelationKey]uuid.UUID),
		videos:        make(map[uuid.UUID]videoRow),
		comments:      make(map[uuid.UUID]commentRow),
		tweets:        make(map[uuid.UUID]tweetRow),
	}
}

// PutUser inserts or replaces an account.
func (s *Store) PutUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// DeleteUser removes an account, leaving rows that reference it dangling.
func (s *Store) DeleteUser(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// nextSeq must be called with mu held for writing.
func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func (s *Store) owner(id uuid.UUID) (model.OwnerSummary, bool) {
	u, ok := s.users[id]
	if !ok {
		return model.OwnerSummary{}, false
	}
	return model.OwnerSummary{ID: u.ID, Username: u.Username, Avatar: u.Avatar}, true
}

func (s *Store) profile(id uuid.UUID) (model.ProfileSummary, bool) {
	u, ok := s.users[id]
	if !ok {
		return model.ProfileSummary{}, false
	}
	return model.ProfileSummary{Username: u.Username, FullName: u.FullName, Avatar: u.Avatar}, true
}

// ordered is a feed row before projection.
type ordered[T any] struct {
	item      T
	createdAt time.Time
	seq       int64
}

// sortFeed orders newest first, breaking ties by insertion order.
func sortFeed[T any](rows []ordered[T]) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].createdAt.Equal(rows[j].createdAt) {
			return rows[i].createdAt.After(rows[j].createdAt)
		}
		return rows[i].seq < rows[j].seq
	})
}

func project[T any](rows []ordered[T]) []T {
	items := make([]T, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.item)
	}
	return items
}

// paginate sorts rows newest first and returns one page plus the total.
func paginate[T any](rows []ordered[T], p model.Pagination) ([]T, int64) {
	sortFeed(rows)
	return slicePage(rows, p)
}

// sortVideos applies s, falling back to insertion order on ties.
func sortVideos(rows []ordered[*model.Video], s model.VideoSort) {
	sort.SliceStable(rows, func(i, j int) bool {
		if less, decided := s.Less(rows[i].item, rows[j].item); decided {
			return less
		}
		return rows[i].seq < rows[j].seq
	})
}

// slicePage cuts one page out of already sorted rows.
func slicePage[T any](rows []ordered[T], p model.Pagination) ([]T, int64) {
	total := int64(len(rows))

	start := p.Offset()
	if start < 0 || start > len(rows) {
		start = len(rows)
	}
	end := start + p.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return project(rows[start:end]), total
}

// withOwner copies v and attaches its owner summary when the user exists.
func (s *Store) withOwner(v model.Video) *model.Video {
	v.Owner = nil
	if owner, ok := s.owner(v.OwnerID); ok {
		v.Owner = &owner
	}
	return &v
}
