package store

import (
	"context"
	"errors"
	"fmt"

	"pdfrag/types"
)

// ErrCollectionNotFound is returned by Search for a collection that was
// never created. The query path does not create collections implicitly.
var ErrCollectionNotFound = errors.New("collection not found")

// ProvisionError reports a failed collection create/check.
type ProvisionError struct {
	Collection string
	Err        error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provisioning collection %q: %v", e.Collection, e.Err)
}

func (e *ProvisionError) Unwrap() error {
	return e.Err
}

// WriteError reports a failed chunk upsert. The batch is written in a
// single transaction, so a WriteError means nothing was persisted.
type WriteError struct {
	Collection string
	Err        error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing to collection %q: %v", e.Collection, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

type VectorStorer interface {
	EnsureCollection(ctx context.Context, name string, vectorSize int) error
	UpsertChunks(ctx context.Context, collection string, chunks []types.Chunk) error
	Search(ctx context.Context, collection string, queryVec []float32, limit int) ([]types.SearchHit, error)
}
