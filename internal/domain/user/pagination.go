package user

// Pagination represents pagination information for list responses.
type Pagination struct {
	CurrentPage  int64 // Current page number (1-based)
	TotalPages   int64 // Total number of pages
	TotalItems   int64 // Total number of records
	ItemsPerPage int64 // Number of records per page
}

// NewPagination creates a Pagination with TotalPages computed as ceil(total/limit).
func NewPagination(total, page, limit int64) *Pagination {
	var totalPages int64
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}
