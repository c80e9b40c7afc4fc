package cachemanager

import "time"

// ReadThroughCache wraps a CacheManager with a loader function that
// computes missing values. I is the loader input, which may carry more
// context than the cache key itself.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache           CacheManager[K, V]
	load            func(input I) (V, error)
	shouldSkipCache bool
}

// NewReadThroughCache creates a read-through cache.
// shouldSkipCache bypasses the cache entirely, which keeps call sites
// unchanged when caching is disabled.
func NewReadThroughCache[K comparable, V any, I any](
	cache CacheManager[K, V],
	load func(input I) (V, error),
	shouldSkipCache bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		cache:           cache,
		load:            load,
		shouldSkipCache: shouldSkipCache,
	}
}

// Get returns the cached value for key, loading and caching it on a miss.
func (r *ReadThroughCache[K, V, I]) Get(key K, input I, ttl time.Duration) (V, error) {
	if r.shouldSkipCache {
		return r.load(input)
	}

	if value, ok := r.cache.Get(key); ok {
		return value, nil
	}

	value, err := r.load(input)
	if err != nil {
		return value, err
	}

	r.cache.Set(key, value, ttl)

	return value, nil
}
