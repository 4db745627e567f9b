package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{"defaults", "", 1, 20},
		{"explicit values", "?page=3&page_size=50", 3, 50},
		{"zero page falls back", "?page=0", 1, 20},
		{"negative page falls back", "?page=-2", 1, 20},
		{"non-numeric page falls back", "?page=abc", 1, 20},
		{"oversized page_size is capped", "?page_size=1000", 1, 100},
		{"zero page_size falls back", "?page_size=0", 1, 20},
		{"page_size at the cap", "?page_size=100", 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "http://test/events/ev-1/scheduled-posts"+tt.query, nil)
			params := ParsePagination(r)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantSize, params.PageSize)
		})
	}
}

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		name           string
		page, size     int
		total          int
		wantTotalPages int
	}{
		{"empty result", 1, 20, 0, 0},
		{"exact multiple", 1, 20, 40, 2},
		{"partial final page", 2, 20, 41, 3},
		{"single short page", 1, 20, 5, 1},
		{"zero page size", 1, 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewPaginationMeta(tt.page, tt.size, tt.total)
			assert.Equal(t, tt.page, meta.Page)
			assert.Equal(t, tt.size, meta.PageSize)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.wantTotalPages, meta.TotalPages)
		})
	}
}
