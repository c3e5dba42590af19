package docstore

import (
	"errors"
	"fmt"
	"regexp"
)

var ErrNotFound = errors.New("document not found")

type Op string

const (
	OpEqual        Op = "=="
	OpGreaterEqual Op = ">="
	OpLessEqual    Op = "<="
	OpGreater      Op = ">"
	OpLess         Op = "<"
)

type Direction int

const (
	Asc Direction = iota
	Desc
)

// Document is a single record read from a collection. Data holds the raw
// field values as decoded by the backend.
type Document struct {
	ID   string
	Data map[string]any
}

type Filter struct {
	Field string
	Op    Op
	Value any
}

type Order struct {
	Field     string
	Direction Direction
}

// Query describes a read against one collection. A zero Limit reads every
// matching document.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    *Order
	Limit      int
}

func NewQuery(collection string) Query {
	return Query{Collection: collection}
}

func (q Query) Where(field string, op Op, value any) Query {
	filters := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(filters, q.Filters)
	q.Filters = append(filters, Filter{Field: field, Op: op, Value: value})
	return q
}

func (q Query) Order(field string, dir Direction) Query {
	q.OrderBy = &Order{Field: field, Direction: dir}
	return q
}

func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (q Query) Validate() error {
	if q.Collection == "" {
		return errors.New("query: collection is required")
	}
	for _, f := range q.Filters {
		if !fieldPattern.MatchString(f.Field) {
			return fmt.Errorf("query: invalid field name %q", f.Field)
		}
		switch f.Op {
		case OpEqual, OpGreaterEqual, OpLessEqual, OpGreater, OpLess:
		default:
			return fmt.Errorf("query: unsupported operator %q", f.Op)
		}
	}
	if q.OrderBy != nil && !fieldPattern.MatchString(q.OrderBy.Field) {
		return fmt.Errorf("query: invalid order field %q", q.OrderBy.Field)
	}
	if q.Limit < 0 {
		return fmt.Errorf("query: negative limit %d", q.Limit)
	}
	return nil
}
