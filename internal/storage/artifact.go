// Package storage persists rendered artifacts. The portal addresses every
// artifact by an opaque object key; documents and signatures store the key,
// never the bytes.
package storage

import "context"

type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}
