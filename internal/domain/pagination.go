package domain

// DefaultPageSize is used when a list request carries no page size.
const DefaultPageSize = 20

// PaginationParams holds 1-based pagination for list queries. The zero
// value is usable: Limit falls back to DefaultPageSize and Offset to 0.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Limit returns the page size for a LIMIT clause.
func (p PaginationParams) Limit() int {
	if p.PageSize < 1 {
		return DefaultPageSize
	}
	return p.PageSize
}

// Offset returns the row offset for an OFFSET clause.
func (p PaginationParams) Offset() int {
	if p.Page < 2 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}
