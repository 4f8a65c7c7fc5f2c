package pagination

import (
	"fmt"
	"strings"
)

// Direction is a sort direction as it appears on the wire.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// IDField is the unique tie-break field every effective order ends with.
const IDField = "id"

// Valid reports whether d is exactly ASC or DESC. The check is case-sensitive.
func (d Direction) Valid() bool {
	return d == Asc || d == Desc
}

// seekOperator returns the comparison that selects rows after the cursor.
func (d Direction) seekOperator() string {
	if d == Desc {
		return "<"
	}
	return ">"
}

// Directive is one "<field>_<DIRECTION>" sort instruction.
type Directive struct {
	Field     string
	Direction Direction
}

// String renders the directive in wire form, e.g. "startDate_DESC".
func (d Directive) String() string {
	return d.Field + "_" + string(d.Direction)
}

// ParseDirective parses a wire directive. The field is everything before the
// last underscore, so "start_date_DESC" names the field "start_date".
func ParseDirective(raw string) (Directive, error) {
	i := strings.LastIndexByte(raw, '_')
	if i < 0 {
		return Directive{}, fmt.Errorf("%w: %q has no direction suffix", ErrInvalidOrderDirection, raw)
	}
	d := Directive{Field: raw[:i], Direction: Direction(raw[i+1:])}
	if !d.Direction.Valid() {
		return Directive{}, fmt.Errorf("%w: %q must end with _ASC or _DESC", ErrInvalidOrderDirection, raw)
	}
	if d.Field == "" {
		return Directive{}, fmt.Errorf("%w: %q has an empty field name", ErrInvalidOrderField, raw)
	}
	return d, nil
}

// Order is an ordered list of directives. The first entry is the primary sort key.
type Order []Directive

// ParseOrder parses every directive in raw, failing on the first invalid one.
func ParseOrder(raw []string) (Order, error) {
	order := make(Order, 0, len(raw)+1)
	seen := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		d, err := ParseDirective(s)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[d.Field]; dup {
			return nil, fmt.Errorf("%w: %q is listed more than once", ErrInvalidOrderField, d.Field)
		}
		seen[d.Field] = struct{}{}
		order = append(order, d)
	}
	return order, nil
}

// HasField reports whether some directive sorts by field.
func (o Order) HasField(field string) bool {
	for _, d := range o {
		if d.Field == field {
			return true
		}
	}
	return false
}

// WithTieBreak returns o with id_DESC appended when no directive sorts by id.
func (o Order) WithTieBreak() Order {
	if o.HasField(IDField) {
		return o
	}
	out := make(Order, len(o), len(o)+1)
	copy(out, o)
	return append(out, Directive{Field: IDField, Direction: Desc})
}

// Uniform reports whether every directive shares one direction.
func (o Order) Uniform() bool {
	if len(o) == 0 {
		return true
	}
	for _, d := range o[1:] {
		if d.Direction != o[0].Direction {
			return false
		}
	}
	return true
}

// Fields returns the field names in order.
func (o Order) Fields() []string {
	fields := make([]string, len(o))
	for i, d := range o {
		fields[i] = d.Field
	}
	return fields
}

// Strings returns the wire form of every directive.
func (o Order) Strings() []string {
	out := make([]string, len(o))
	for i, d := range o {
		out[i] = d.String()
	}
	return out
}
