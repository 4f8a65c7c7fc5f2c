package pagination

// Response is a generic cursor-paginated response wrapper.
// T is the type of data items (e.g., PostDTO).
//
// Example usage:
//
//	response := pagination.NewResponse(posts, nextCursor, count)
//	// response is of type pagination.Response[PostDTO]
type Response[T any] struct {
	Data       []T     `json:"data"`       // Rows of the current page
	NextCursor *string `json:"nextCursor"` // Cursor for the next page, null on the last page
	Count      int64   `json:"count"`      // Rows matching the listing from this position on
}

// NewResponse creates a new paginated response.
// A nil data slice is rendered as an empty JSON array.
func NewResponse[T any](data []T, nextCursor *string, count int64) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{
		Data:       data,
		NextCursor: nextCursor,
		Count:      count,
	}
}
