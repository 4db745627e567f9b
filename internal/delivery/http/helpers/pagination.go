package helpers

import (
	"net/http"
	"strconv"

	"announcehub/internal/domain"
)

// Bounds for the page and page_size query parameters.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page and page_size from the query string. Missing,
// malformed, or non-positive values fall back to the defaults; page_size is
// capped at MaxPageSize.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	page := positiveIntParam(q.Get("page"), DefaultPage)
	size := positiveIntParam(q.Get("page_size"), DefaultPageSize)
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return domain.PaginationParams{Page: page, PageSize: size}
}

func positiveIntParam(raw string, fallback int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// PaginationMeta is the pagination block included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta builds PaginationMeta for the given page and total count.
// TotalPages rounds up, so a partial final page still counts.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
