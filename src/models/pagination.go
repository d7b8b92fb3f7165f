package models

import "math"

// PaginationParams carries paging, search and sort options for list endpoints.
type PaginationParams struct {
	Page   int    `json:"page" query:"page"  example:"1"`      // page number
	Limit  int    `json:"limit" query:"limit" example:"10"`    // items per page
	Search string `json:"search" query:"search" example:""`    // search term (optional)
	SortBy string `json:"sortBy" query:"sortBy" example:"_id"` // sort field
	Order  string `json:"order" query:"order" example:"desc"`  // sort direction (asc/desc)
}

// PaginatedResponse is the standard paged list envelope.
type PaginatedResponse struct {
	Data        interface{} `json:"data"`
	Total       int64       `json:"total"`
	Page        int         `json:"page"`
	Limit       int         `json:"limit"`
	TotalPages  int         `json:"totalPages"`
	HasNext     bool        `json:"hasNext"`
	HasPrevious bool        `json:"hasPrevious"`
}

// DefaultPagination returns the default paging options.
func DefaultPagination() PaginationParams {
	return PaginationParams{
		Page:   1,
		Limit:  10,
		Search: "",
		SortBy: "_id",
		Order:  "asc",
	}
}

// NewPaginatedResponse builds a PaginatedResponse around data.
func NewPaginatedResponse(data interface{}, total int64, params PaginationParams) *PaginatedResponse {
	totalPages := int(math.Ceil(float64(total) / float64(params.Limit)))

	return &PaginatedResponse{
		Data:        data,
		Total:       total,
		Page:        params.Page,
		Limit:       params.Limit,
		TotalPages:  totalPages,
		HasNext:     params.Page < totalPages,
		HasPrevious: params.Page > 1,
	}
}

// GetSkip computes the number of items to skip.
func (p *PaginationParams) GetSkip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// GetSortOrder builds the sort document for the query.
func (p *PaginationParams) GetSortOrder() map[string]int {
	order := 1 // 1 = asc, -1 = desc
	if p.Order == "desc" {
		order = -1
	}
	return map[string]int{p.SortBy: order}
}
