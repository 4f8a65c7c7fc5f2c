package pagination

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind is the storage type of a sortable column. Cursor values are checked
// against it before they are bound into the seek predicate.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindTime
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindTime:
		return "timestamp"
	case KindBool:
		return "boolean"
	default:
		return "text"
	}
}

// Column is a sortable column on the query's aliased table.
type Column struct {
	Name string
	Kind Kind
}

// bind converts a decoded cursor value into the argument for a column of
// kind k. Timestamps must be RFC 3339 strings.
func (k Kind) bind(v any) (any, error) {
	switch k {
	case KindInt:
		if n, ok := v.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				return i, nil
			}
		}
	case KindFloat:
		if n, ok := v.(json.Number); ok {
			if f, err := n.Float64(); err == nil {
				return f, nil
			}
		}
	case KindTime:
		if s, ok := v.(string); ok {
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
				return t, nil
			}
		}
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	default:
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: value %v is not a %s", ErrInvalidCursor, v, k)
}
