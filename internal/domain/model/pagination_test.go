package model

import (
	"math"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"explicit values", "2", "5", 2, 5},
		{"empty falls back to defaults", "", "", DefaultPage, DefaultLimit},
		{"malformed falls back to defaults", "abc", "1.5", DefaultPage, DefaultLimit},
		{"zero clamps to defaults", "0", "0", DefaultPage, DefaultLimit},
		{"negative clamps to defaults", "-3", "-1", DefaultPage, DefaultLimit},
		{"limit above max is capped", "1", "1000", 1, MaxLimit},
		{"huge page is capped", "92233720368547760", "100", MaxPage, MaxLimit},
		{"page past int range falls back", "99999999999999999999", "5", DefaultPage, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePagination(tt.page, tt.limit)
			if p.Page != tt.wantPage || p.Limit != tt.wantLimit {
				t.Errorf("ParsePagination(%q, %q) = %+v, want page=%d limit=%d",
					tt.page, tt.limit, p, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestPagination_Offset(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{1, 10, 0},
		{2, 5, 5},
		{3, 5, 10},
		{math.MaxInt, MaxLimit, (MaxPage - 1) * MaxLimit},
	}

	for _, tt := range tests {
		if got := NewPagination(tt.page, tt.limit).Offset(); got != tt.want {
			t.Errorf("Offset() for page=%d limit=%d = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
		if got := NewPagination(tt.page, tt.limit).Offset(); got < 0 {
			t.Errorf("Offset() for page=%d limit=%d overflowed to %d", tt.page, tt.limit, got)
		}
	}
}

func TestNewPage(t *testing.T) {
	p := NewPagination(3, 5)

	page := NewPage([]int{11, 12}, p, 12)

	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
	if page.Page != 3 || page.Limit != 5 || page.Total != 12 {
		t.Errorf("NewPage() = %+v", page)
	}

	empty := NewPage[int](nil, p, 0)
	if empty.Items == nil {
		t.Error("NewPage() should never return nil items")
	}
	if empty.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", empty.TotalPages)
	}
}
