package responses

// Pagination is the envelope metadata for list endpoints. Limit -1 means
// the listing was unpaginated.
type Pagination struct {
	Limit       int   `json:"limit"`
	Page        int   `json:"page"`
	TotalItems  int64 `json:"totalItems"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
}

// NewPagination derives the envelope for a query and its total row count.
func NewPagination(limit, page int, totalItems int64) Pagination {
	p := Pagination{
		Limit:       limit,
		Page:        page,
		TotalItems:  totalItems,
		CurrentPage: page,
		TotalPages:  1,
	}
	if limit > 0 {
		p.TotalPages = int((totalItems + int64(limit) - 1) / int64(limit))
		if p.TotalPages == 0 {
			p.TotalPages = 1
		}
	}
	return p
}
