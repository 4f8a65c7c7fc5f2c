// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"book-journal/internal/common/pagination"
)

// psql builds statements with PostgreSQL $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// SelectQuery adapts a squirrel SELECT to pagination.Query.
//
// It keeps the row query and a COUNT query side by side: predicates go to
// both, ORDER BY and LIMIT only to the row query, so the count reports every
// row matching the listing from the cursor position on.
type SelectQuery struct {
	rows    sq.SelectBuilder
	count   sq.SelectBuilder
	alias   string
	columns map[string]pagination.Column
}

var _ pagination.Query = (*SelectQuery)(nil)

// NewSelectQuery wraps base, a SELECT with FROM, joins and filters but no
// columns. sortable maps API field names to typed columns of the aliased table.
func NewSelectQuery(base sq.SelectBuilder, alias string, sortable map[string]pagination.Column, columns ...string) *SelectQuery {
	return &SelectQuery{
		rows:    base.Columns(columns...),
		count:   base.Columns("COUNT(*)"),
		alias:   alias,
		columns: sortable,
	}
}

func (q *SelectQuery) Alias() string { return q.alias }

func (q *SelectQuery) Column(field string) (pagination.Column, bool) {
	col, ok := q.columns[field]
	return col, ok
}

func (q *SelectQuery) Where(pred string, args ...any) {
	q.rows = q.rows.Where(pred, args...)
	q.count = q.count.Where(pred, args...)
}

func (q *SelectQuery) OrderBy(column string, dir pagination.Direction) {
	q.rows = q.rows.OrderBy(column + " " + string(dir))
}

func (q *SelectQuery) Limit(n uint64) {
	q.rows = q.rows.Limit(n)
}

// ToSql renders the row query.
func (q *SelectQuery) ToSql() (string, []any, error) {
	query, args, err := q.rows.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build select: %w", err)
	}
	return query, args, nil
}

// CountSql renders the COUNT query.
func (q *SelectQuery) CountSql() (string, []any, error) {
	query, args, err := q.count.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build count: %w", err)
	}
	return query, args, nil
}
