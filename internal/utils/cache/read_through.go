package cache

import (
	"context"
	"log"
)

// Getter is the read side of a cache backend.
type Getter interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}

// Recorder receives hit and miss events per cache name.
type Recorder interface {
	RecordCacheHit(cacheName string)
	RecordCacheMiss(cacheName string)
}

// ReadThrough returns the cached value for key or loads, stores and returns
// it. Cache errors are logged and treated as a miss; only load errors are
// returned.
func ReadThrough[T any](ctx context.Context, c Getter, rec Recorder, name CacheName, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	hit, err := c.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("⚠️ Cache read failed for %s: %v", key, err)
	}
	if hit && err == nil {
		rec.RecordCacheHit(string(name))
		return cached, nil
	}
	rec.RecordCacheMiss(string(name))

	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	if err := c.Set(ctx, key, value); err != nil {
		log.Printf("⚠️ Cache write failed for %s: %v", key, err)
	}
	return value, nil
}
