package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving report
// snapshots and other binary objects by key.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
