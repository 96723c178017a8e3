package repositories

import (
	"context"
)

// CacheRepository is a best-effort key/value cache holding JSON-encoded views.
// Get reports false on a miss.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}
