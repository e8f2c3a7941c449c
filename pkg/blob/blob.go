// Package blob persists each record collection as a single durable blob.
// Backends only need to load and store whole collections; all record
// semantics live above, in pkg/store.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when the collection has never been saved.
var ErrNotFound = errors.New("collection_not_found")

// Store is the durable surface for whole-collection blobs.
type Store interface {
	Load(ctx context.Context, collection string) ([]byte, error)
	Save(ctx context.Context, collection string, data []byte) error
}
