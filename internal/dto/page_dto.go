package dto

type PaginationRequest struct {
	Current   int    `json:"current"`
	PageSize  int    `json:"page_size"`
	SortField string `json:"sort_field"`
	SortOrder string `json:"sort_order"`
}

// PageResult 分页结果
type PageResult[T any] struct {
	Current int   `json:"current"`
	Size    int   `json:"size"`
	Total   int64 `json:"total"`
	Records []T   `json:"records"`
}

type DeleteRequest struct {
	ID uint `json:"id"`
}
