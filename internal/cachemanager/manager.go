// Package cachemanager provides typed in-memory caches with TTL support.
// plume uses it to memoize per-line display layouts, which are pure
// functions of line content and therefore self-invalidate when keyed by it.
package cachemanager

import "time"

// NoExpiration marks entries that never expire.
const NoExpiration time.Duration = -1

// DefaultExpiration uses the cache's configured default TTL.
const DefaultExpiration time.Duration = 0

// CacheManager is the interface cache consumers depend on.
type CacheManager[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(keys ...K)
	Flush()
	ItemCount() int
}
