// Package paging carries the response envelope for paginated listings.
package paging

// Page is a slice of results plus the counts a client needs to render
// pagination controls.
type Page[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	PageSize    int   `json:"page_size"`
	TotalCount  int64 `json:"total_count"`
	HasPrevious bool  `json:"has_previous"`
	HasNext     bool  `json:"has_next"`
}

// NewPage computes totals for one page of results. pageNumber and
// pageSize must both be >= 1; a pageNumber past the end simply yields
// an empty Items with the totals intact.
func NewPage[T any](items []T, totalCount int64, pageNumber, pageSize int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	return &Page[T]{
		Items:       items,
		CurrentPage: pageNumber,
		TotalPages:  totalPages,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		HasPrevious: pageNumber > 1,
		HasNext:     pageNumber < totalPages,
	}
}
