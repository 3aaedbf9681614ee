// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by ResultCache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// ResultCache stores serialized aggregation results keyed by an input hash.
type ResultCache interface {
	// Get retrieves a cached payload. Returns ErrCacheMiss when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a payload under key.
	Set(ctx context.Context, key string, payload []byte) error
}
