package pagination

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// Payload is what a cursor string decodes to: the sort key values of the last
// row of the previous page and the order that produced that page.
type Payload struct {
	Values map[string]any `json:"values"`
	Order  []string       `json:"order"`
}

// EncodeCursor serializes p as base64 (standard alphabet) of its JSON form.
func EncodeCursor(p Payload) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DecodeCursor parses a cursor produced by EncodeCursor and returns its payload
// together with the parsed order.
//
// Decoding is strict: unknown keys, missing values or order, trailing data,
// non-scalar values and a values/order field mismatch all fail with
// ErrInvalidCursor. Numbers are kept as json.Number.
func DecodeCursor(cursor string) (Payload, Order, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return Payload{}, nil, fmt.Errorf("%w: not base64", ErrInvalidCursor)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	dec.UseNumber()

	var p Payload
	if err := dec.Decode(&p); err != nil {
		return Payload{}, nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Payload{}, nil, fmt.Errorf("%w: trailing data", ErrInvalidCursor)
	}
	if p.Values == nil || len(p.Order) == 0 {
		return Payload{}, nil, fmt.Errorf("%w: values and order are required", ErrInvalidCursor)
	}

	order, err := ParseOrder(p.Order)
	if err != nil {
		return Payload{}, nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if len(p.Values) != len(order) {
		return Payload{}, nil, fmt.Errorf("%w: %d values for %d order fields", ErrInvalidCursor, len(p.Values), len(order))
	}
	for _, field := range order.Fields() {
		v, ok := p.Values[field]
		if !ok {
			return Payload{}, nil, fmt.Errorf("%w: missing value for %q", ErrInvalidCursor, field)
		}
		if !isScalar(v) {
			return Payload{}, nil, fmt.Errorf("%w: value for %q is not a scalar", ErrInvalidCursor, field)
		}
	}
	return p, order, nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, json.Number, bool:
		return true
	default:
		return false
	}
}

// cursorValue normalizes a row value before it is written into a cursor.
func cursorValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return v
	}
}
