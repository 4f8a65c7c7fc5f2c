package pagination

import (
	"fmt"
	"strings"
)

// Query is the query builder a listing hands to Apply. The paginator only
// annotates it; the caller owns execution.
type Query interface {
	// Alias is the primary table alias used to qualify columns. It may be empty.
	Alias() string
	// Column maps a sortable API field to its column on the aliased table.
	// Fields that are not sortable return false.
	Column(field string) (Column, bool)
	// Where adds a predicate that uses "?" placeholders.
	Where(pred string, args ...any)
	// OrderBy appends an ORDER BY term.
	OrderBy(column string, dir Direction)
	// Limit caps the number of rows returned.
	Limit(n uint64)
}

// Record exposes the sort key values of a result row by API field name.
type Record interface {
	CursorValue(field string) (any, bool)
}

// Plan is the outcome of Apply: the effective order and page size for one call.
type Plan struct {
	order     Order
	take      int
	hasCursor bool
}

// Order returns the effective order the query was sorted by.
func (p *Plan) Order() Order { return p.order }

// Take returns the page size applied to the query.
func (p *Plan) Take() int { return p.take }

// HasCursor reports whether the request continued from a cursor.
func (p *Plan) HasCursor() bool { return p.hasCursor }

// Apply validates req and adds the seek predicate, sort and limit to q.
//
// The effective order is the request order with id_DESC appended when it does
// not sort by id. A cursor, when present, replaces that order with the one it
// was produced with. Every validation happens before q is touched, so a
// failed Apply leaves q unchanged.
func Apply(q Query, req Request) (*Plan, error) {
	order, err := ParseOrder(req.Order)
	if err != nil {
		return nil, err
	}
	order = order.WithTieBreak()

	if req.Take < 1 {
		return nil, fmt.Errorf("%w: take must be a positive integer, got %d", ErrInvalidTake, req.Take)
	}

	var payload Payload
	if req.Cursor != "" {
		var cursorOrder Order
		payload, cursorOrder, err = DecodeCursor(req.Cursor)
		if err != nil {
			return nil, err
		}
		if !cursorOrder.HasField(IDField) {
			return nil, fmt.Errorf("%w: order has no %s tie-break", ErrInvalidCursor, IDField)
		}
		order = cursorOrder
	}

	columns, err := resolveColumns(q, order)
	if err != nil {
		return nil, err
	}

	var values []any
	if req.Cursor != "" {
		values = make([]any, len(order))
		for i, d := range order {
			v, err := columns[i].Kind.bind(payload.Values[d.Field])
			if err != nil {
				return nil, fmt.Errorf("%w (field %q)", err, d.Field)
			}
			values[i] = v
		}
	}

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	if values != nil {
		pred, args := seekPredicate(names, order, values)
		q.Where(pred, args...)
	}
	for i, d := range order {
		q.OrderBy(names[i], d.Direction)
	}
	q.Limit(uint64(req.Take))

	return &Plan{order: order, take: req.Take, hasCursor: values != nil}, nil
}

// resolveColumns qualifies the column of every order field with the alias.
func resolveColumns(q Query, order Order) ([]Column, error) {
	alias := q.Alias()
	columns := make([]Column, len(order))
	for i, d := range order {
		col, ok := q.Column(d.Field)
		if !ok {
			return nil, fmt.Errorf("%w: cannot sort by %q", ErrInvalidOrderField, d.Field)
		}
		if alias != "" {
			col.Name = alias + "." + col.Name
		}
		columns[i] = col
	}
	return columns, nil
}

// seekPredicate builds the filter selecting rows strictly after values.
// A uniform order uses one row-value comparison. A mixed order expands into
// the lexicographic OR chain, each column compared with its own operator.
func seekPredicate(columns []string, order Order, values []any) (string, []any) {
	if order.Uniform() {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
		pred := fmt.Sprintf("(%s) %s (%s)",
			strings.Join(columns, ", "), order[0].Direction.seekOperator(), placeholders)
		return pred, values
	}

	terms := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns)*(len(columns)+1)/2)
	for i := range columns {
		parts := make([]string, 0, i+1)
		for j := 0; j < i; j++ {
			parts = append(parts, columns[j]+" = ?")
			args = append(args, values[j])
		}
		parts = append(parts, columns[i]+" "+order[i].Direction.seekOperator()+" ?")
		args = append(args, values[i])
		terms = append(terms, "("+strings.Join(parts, " AND ")+")")
	}
	return "(" + strings.Join(terms, " OR ") + ")", args
}

// CursorAfter encodes the continuation cursor positioned after r.
func (p *Plan) CursorAfter(r Record) (string, error) {
	values := make(map[string]any, len(p.order))
	for _, d := range p.order {
		v, ok := r.CursorValue(d.Field)
		if ok {
			v = cursorValue(v)
		}
		if v == nil {
			return "", fmt.Errorf("cursor after row: no value for field %q", d.Field)
		}
		values[d.Field] = v
	}
	return EncodeCursor(Payload{Values: values, Order: p.order.Strings()})
}

// NextCursor returns the cursor for the page after rows, or nil when rows is
// the last page. A page is the last one when it is empty or holds fewer rows
// than were asked for.
func NextCursor[R Record](p *Plan, rows []R) (*string, error) {
	if len(rows) == 0 || len(rows) < p.take {
		return nil, nil
	}
	c, err := p.CursorAfter(rows[len(rows)-1])
	if err != nil {
		return nil, err
	}
	return &c, nil
}
