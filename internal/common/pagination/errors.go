package pagination

import "errors"

// Client input errors. Handlers map every one of them to 400 Bad Request.
var (
	// ErrInvalidOrderDirection is returned when a directive's direction is not exactly ASC or DESC.
	ErrInvalidOrderDirection = errors.New("invalid order direction")

	// ErrInvalidOrderField is returned when a directive names a field the listing cannot sort by.
	ErrInvalidOrderField = errors.New("invalid order field")

	// ErrInvalidCursor is returned when a cursor cannot be decoded or its values and order disagree.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrInvalidTake is returned when take is not a positive integer.
	ErrInvalidTake = errors.New("invalid take")
)

// IsClientError reports whether err was caused by malformed pagination input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidOrderDirection) ||
		errors.Is(err, ErrInvalidOrderField) ||
		errors.Is(err, ErrInvalidCursor) ||
		errors.Is(err, ErrInvalidTake)
}
