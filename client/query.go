package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

type action int

const (
	actionSelect action = iota
	actionInsert
	actionUpsert
	actionDelete
)

type filter struct {
	op     string // "eq", "neq", "in", "gte", "lte"
	column string
	value  interface{}
	values []interface{}
}

type orderClause struct {
	column    string
	ascending bool
}

// Query accumulates a filter chain against one table. Nothing touches the
// network until Do, Into, Single or Count runs; each execution issues exactly
// one HTTP request.
type Query struct {
	c     *Client
	table string
	err   error

	action  action
	columns string
	filters []filter
	order   *orderClause
	limit   *int
	offset  *int
	payload interface{}
}

// Select names the columns to fetch. The backend returns full rows either
// way; the value is kept for API familiarity.
func (q *Query) Select(columns string) *Query {
	q.columns = columns
	return q
}

// Eq filters rows where column equals value.
func (q *Query) Eq(column string, value interface{}) *Query {
	q.filters = append(q.filters, filter{op: "eq", column: column, value: value})
	return q
}

// Neq filters rows where column differs from value.
func (q *Query) Neq(column string, value interface{}) *Query {
	q.filters = append(q.filters, filter{op: "neq", column: column, value: value})
	return q
}

// In filters rows where column is one of values.
func (q *Query) In(column string, values ...interface{}) *Query {
	q.filters = append(q.filters, filter{op: "in", column: column, values: values})
	return q
}

// Gte filters rows where column is at or above value.
func (q *Query) Gte(column string, value interface{}) *Query {
	q.filters = append(q.filters, filter{op: "gte", column: column, value: value})
	return q
}

// Lte filters rows where column is at or below value.
func (q *Query) Lte(column string, value interface{}) *Query {
	q.filters = append(q.filters, filter{op: "lte", column: column, value: value})
	return q
}

// Order records a sort request. The parameters are sent on the wire but the
// backend ignores them; posts always come back newest first. Kept for API
// familiarity with the browser query builder.
func (q *Query) Order(column string, ascending bool) *Query {
	q.order = &orderClause{column: column, ascending: ascending}
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.limit = &n
	return q
}

// Range selects rows from index from to index to, both inclusive.
func (q *Query) Range(from, to int) *Query {
	if from < 0 || to < from {
		q.err = fmt.Errorf("client: invalid range [%d, %d]", from, to)
		return q
	}
	n := to - from + 1
	q.offset = &from
	q.limit = &n
	return q
}

// Insert stages rows for creation. Execution semantics are per table; link
// tables treat an insert as a full replacement of a post's links.
func (q *Query) Insert(payload interface{}) *Query {
	q.action = actionInsert
	q.payload = payload
	return q
}

// Upsert stages a row for create-or-update.
func (q *Query) Upsert(payload interface{}) *Query {
	q.action = actionUpsert
	q.payload = payload
	return q
}

// Delete stages a deletion scoped by the query's filters.
func (q *Query) Delete() *Query {
	q.action = actionDelete
	return q
}

// Do executes the accumulated query and returns the raw data payload.
func (q *Query) Do(ctx context.Context) (json.RawMessage, error) {
	if q.err != nil {
		return nil, q.err
	}
	res := q.c.resources[q.table]
	return res.execute(ctx, q.c, q)
}

// Into executes the query and decodes the data payload into dest.
func (q *Query) Into(ctx context.Context, dest interface{}) error {
	raw, err := q.Do(ctx)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Single executes the query and decodes exactly one row into dest. An empty
// result is ErrNoRows rather than a zero-valued dest.
func (q *Query) Single(ctx context.Context, dest interface{}) error {
	raw, err := q.Do(ctx)
	if err != nil {
		return err
	}
	row, err := firstRow(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(row, dest)
}

// Count executes the query and returns the number of matching rows.
func (q *Query) Count(ctx context.Context) (int, error) {
	raw, err := q.Do(ctx)
	if err != nil {
		return 0, err
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// firstRow unwraps a single object from either a bare object or an array.
func firstRow(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := trimLeadingSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, ErrNoRows
	}
	if trimmed[0] != '[' {
		return raw, nil
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows[0], nil
}

func trimLeadingSpace(raw []byte) []byte {
	i := 0
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t' || raw[i] == '\n' || raw[i] == '\r') {
		i++
	}
	return raw[i:]
}

// findEq returns the value of the first equality filter on column.
func (q *Query) findEq(column string) (interface{}, bool) {
	for _, f := range q.filters {
		if f.op == "eq" && f.column == column {
			return f.value, true
		}
	}
	return nil, false
}

// findNeq returns the value of the first inequality filter on column.
func (q *Query) findNeq(column string) (interface{}, bool) {
	for _, f := range q.filters {
		if f.op == "neq" && f.column == column {
			return f.value, true
		}
	}
	return nil, false
}

// findIn returns the value list of the first membership filter on column.
func (q *Query) findIn(column string) ([]interface{}, bool) {
	for _, f := range q.filters {
		if f.op == "in" && f.column == column {
			return f.values, true
		}
	}
	return nil, false
}

// selectParams translates the filter chain into posts list query parameters.
// Equality maps onto the column name, membership onto a CSV ids list, and
// gte/lte on created_at onto the from/to window.
func (q *Query) selectParams() url.Values {
	params := url.Values{}
	for _, f := range q.filters {
		switch f.op {
		case "eq":
			params.Set(f.column, formatValue(f.value))
		case "in":
			if f.column == "id" {
				params.Set("ids", joinValues(f.values))
			}
		case "gte":
			if f.column == "created_at" {
				params.Set("from", formatValue(f.value))
			}
		case "lte":
			if f.column == "created_at" {
				params.Set("to", formatValue(f.value))
			}
		}
	}
	if q.order != nil {
		params.Set("order", q.order.column)
		params.Set("asc", strconv.FormatBool(q.order.ascending))
	}
	if q.offset != nil {
		params.Set("offset", strconv.Itoa(*q.offset))
	}
	if q.limit != nil {
		params.Set("limit", strconv.Itoa(*q.limit))
	}
	return params
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

func joinValues(values []interface{}) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ","
		}
		out += formatValue(v)
	}
	return out
}
