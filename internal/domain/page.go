package domain

// Pagination defaults and bounds for list endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// PaginationParams carries page/limit values from the HTTP layer to the
// repo layer. Page is 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional query values.
// Nil or out-of-range values fall back to the defaults; the limit is capped
// at MaxLimit so a client cannot request an unbounded page.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: DefaultPage, Limit: DefaultLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxLimit)
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
