package entity

import "errors"

var (
	// ErrNotFound is returned by repositories when no live row matches.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned by repositories when a write violates a
	// uniqueness constraint.
	ErrConflict = errors.New("record already exists")

	// ErrInvalid matches every *ValidationError through errors.Is.
	ErrInvalid = errors.New("invalid field")
)

// ValidationError names the request field that failed a domain rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Is lets callers test for ErrInvalid without unwrapping to the concrete type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}
