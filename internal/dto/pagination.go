package dto

// PaginatedResponse wraps list results with limit/offset pagination
// metadata. Count is the total across all pages.
type PaginatedResponse struct {
	Count   int64 `json:"count"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	Results any   `json:"results"`
}

// NewPaginatedResponse creates a paginated list response
func NewPaginatedResponse(results any, count int64, limit, offset int) *PaginatedResponse {
	return &PaginatedResponse{
		Count:   count,
		Limit:   limit,
		Offset:  offset,
		Results: results,
	}
}
