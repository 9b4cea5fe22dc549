package domain

// Page is the backend's paginated list envelope.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
}

// PageRequest selects a zero-based page.
type PageRequest struct {
	Page int
	Size int
}
