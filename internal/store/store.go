// Package store defines the document storage collaborator used by the
// document creator and the diagnostics endpoint.
package store

import (
	"context"
	"errors"
)

// ErrUnavailable marks errors caused by a store that is not initialized or
// cannot be reached. Implementations wrap it so callers can use errors.Is.
var ErrUnavailable = errors.New("document store unavailable")

// Store inserts schemaless documents into named collections.
type Store interface {
	// Insert stores doc in collection and returns the identifier the store
	// assigned to it.
	Insert(ctx context.Context, collection string, doc map[string]any) (string, error)
	ListCollectionNames(ctx context.Context) ([]string, error)
	// Name is the database name shown by diagnostics.
	Name() string
}
