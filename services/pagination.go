package services

import "math"

// ListMetadata is the pagination envelope shared by every list endpoint.
// Previous is nil on the first page or when there are no results, and is
// clamped to the last page when the requested page overshoots it. Next is
// nil on or past the last page. PageSize reports the number of items
// actually returned on this page.
type ListMetadata struct {
	TotalItems   int64  `json:"totalItems"`
	Page         int    `json:"page"`
	PageSize     int    `json:"pageSize"`
	TotalPages   int    `json:"totalPages"`
	Previous     *int   `json:"previous"`
	Next         *int   `json:"next"`
	BrandName    string `json:"brandName,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
}

func NewListMetadata(total int64, page, itemCount int) ListMetadata {
	totalPages := int(math.Ceil(float64(total) / float64(PageSize)))

	md := ListMetadata{
		TotalItems: total,
		Page:       page,
		PageSize:   itemCount,
		TotalPages: totalPages,
	}

	if page > 1 && totalPages > 0 {
		previous := page - 1
		if page > totalPages {
			previous = totalPages
		}
		md.Previous = &previous
	}

	if page < totalPages {
		next := page + 1
		md.Next = &next
	}

	return md
}
