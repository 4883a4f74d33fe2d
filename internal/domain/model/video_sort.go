package model

import (
	"cmp"
	"strings"
)

// VideoSortField is a whitelisted column for ordering video listings.
type VideoSortField string

const (
	SortByCreatedAt VideoSortField = "created_at"
	SortByViewCount VideoSortField = "view_count"
	SortByDuration  VideoSortField = "duration"
)

// VideoSort orders a video listing. Ties always fall back to insertion order.
type VideoSort struct {
	Field      VideoSortField
	Descending bool
}

// DefaultVideoSort is newest first.
func DefaultVideoSort() VideoSort {
	return VideoSort{Field: SortByCreatedAt, Descending: true}
}

var sortAliases = map[string]VideoSortField{
	"created_at": SortByCreatedAt,
	"createdat":  SortByCreatedAt,
	"view_count": SortByViewCount,
	"viewcount":  SortByViewCount,
	"views":      SortByViewCount,
	"duration":   SortByDuration,
}

// ParseVideoSort reads the sortBy and sortType query values. Unknown fields
// fall back to created_at and anything other than "asc" sorts descending.
func ParseVideoSort(sortBy, sortType string) VideoSort {
	s := DefaultVideoSort()
	if field, ok := sortAliases[strings.ToLower(strings.TrimSpace(sortBy))]; ok {
		s.Field = field
	}
	s.Descending = !strings.EqualFold(strings.TrimSpace(sortType), "asc")
	return s
}

// Less reports whether a sorts before b, ignoring ties.
// The second result is false when a and b tie on the sort field.
func (s VideoSort) Less(a, b *Video) (less, decided bool) {
	var c int
	switch s.Field {
	case SortByViewCount:
		c = cmp.Compare(a.ViewCount, b.ViewCount)
	case SortByDuration:
		c = cmp.Compare(a.DurationSeconds, b.DurationSeconds)
	default:
		c = a.CreatedAt.Compare(b.CreatedAt)
	}
	if c == 0 {
		return false, false
	}
	if s.Descending {
		return c > 0, true
	}
	return c < 0, true
}
