// Package storage provides the data stores backing the two services: the
// in-memory URL mapping store and the sqlite user repository.
package storage

import (
	"context"
	"errors"

	"go-web-services/types"
)

// Common errors returned by URL storage operations.
var (
	ErrCodeExists             = errors.New("short code already exists")
	ErrCodeNotFound           = errors.New("short code not found")
	ErrStorageCapacityReached = errors.New("storage capacity reached")
)

// URLStorage defines the operations of the URL mapping store. A lookup miss
// surfaces as ErrCodeNotFound, which callers treat as a normal outcome, not
// a failure.
type URLStorage interface {
	// Put inserts a new record for record.ShortCode with a zero click count.
	// It returns ErrCodeExists when the code is already present and leaves
	// the existing record untouched.
	Put(ctx context.Context, record types.URLRecord) error

	// Get returns a snapshot of the record for the given code without
	// touching its click data.
	Get(ctx context.Context, code string) (types.URLRecord, error)

	// RecordClick increments the click count, stamps the last access time
	// and returns the updated snapshot. The read-modify-return is atomic
	// relative to concurrent Put and RecordClick calls.
	RecordClick(ctx context.Context, code string) (types.URLRecord, error)
}
