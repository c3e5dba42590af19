// Package docstore is a thin adapter over the schema-less document stores the
// service reads from. It only translates filter, order and limit primitives;
// callers do any further shaping in memory.
package docstore

import (
	"context"
	"strings"
)

// Store is implemented by every backend. Collection names may be paths of
// the form "parent/{id}/child" to address sub-collections.
type Store interface {
	Query(ctx context.Context, q Query) ([]Document, error)
	Get(ctx context.Context, collection, id string) (*Document, error)
	Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error
	Collections(ctx context.Context) ([]string, error)
	Close() error
}

// SubCollection joins a parent document path and a child collection name.
func SubCollection(collection, id, child string) string {
	return strings.Join([]string{collection, id, child}, "/")
}
