package ports

import "context"

// PersistentStore is a flat key-value store over durable storage. Get returns
// an error wrapping domain.ErrKeyNotFound for missing keys; Delete of a missing
// key succeeds.
type PersistentStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
