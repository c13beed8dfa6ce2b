package request

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// PaginatedRequest carries the page window for list endpoints. Values come
// from query parameters, so both fields are clamped rather than rejected.
type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// Limit returns the per-page size clamped to [1, maxPerPage], falling back
// to the default when unset.
func (p PaginatedRequest) Limit() int {
	switch {
	case p.PerPage < 1:
		return defaultPerPage
	case p.PerPage > maxPerPage:
		return maxPerPage
	default:
		return p.PerPage
	}
}

// Offset returns the row offset for the requested page.
func (p PaginatedRequest) Offset() int {
	if p.Page < 2 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}
