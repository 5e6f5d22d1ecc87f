// Package metadata is a small key/value store kept in the local sqlite
// database. The session token, cached profile and transient signup token
// live here.
package metadata

import "context"

// Repository stores opaque values by key. Get returns (nil, nil) for a
// missing key; Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
