package models

// Page is one server-side page of results. Number is zero-indexed; the
// client holds at most one page per list (re-fetching replaces, never
// merges).
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}
