// Package kvstore is the durable key/value medium behind cart snapshots and the
// user directory. Values are opaque serialized documents stored under fixed keys.
package kvstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kvstore: key not found")

type Store interface {
	// Get returns ErrNotFound when the key has never been written or was deleted.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
