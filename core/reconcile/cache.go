package reconcile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache holds the loaded indices of one spec.
type Cache struct {
	// Indices maps source name to its index.
	Indices map[string]Index

	// Built is the timestamp when this cache was built.
	Built time.Time

	// TTL is the time-to-live for this cache.
	TTL time.Duration
}

// IsExpired returns true if this cache has expired based on its TTL.
func (c *Cache) IsExpired() bool {
	if c.TTL == 0 {
		return true
	}
	return time.Since(c.Built) > c.TTL
}

type cacheStore struct {
	mu     sync.RWMutex
	caches map[string]*Cache
	sf     singleflight.Group
}

var globalCacheStore = &cacheStore{
	caches: make(map[string]*Cache),
}

// BuildCache loads every source of spec concurrently.
// It does not store the result; use GetOrBuildCache for that.
func BuildCache(ctx context.Context, spec *Spec) (*Cache, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	indices := make([]Index, len(spec.Sources))
	errs := make([]error, len(spec.Sources))

	var wg sync.WaitGroup
	wg.Add(len(spec.Sources))
	for i, src := range spec.Sources {
		go func(i int, src Source) {
			defer wg.Done()
			indices[i], errs[i] = src.LoadIndex(ctx)
		}(i, src)
	}
	wg.Wait()

	cache := &Cache{
		Indices: make(map[string]Index, len(spec.Sources)),
		Built:   time.Now(),
		TTL:     spec.CacheTTL,
	}
	for i, src := range spec.Sources {
		if errs[i] != nil {
			return nil, fmt.Errorf("failed to load %s index: %w", src.Name(), errs[i])
		}
		if indices[i] == nil {
			indices[i] = Index{}
		}
		cache.Indices[src.Name()] = indices[i]
	}
	return cache, nil
}

// GetOrBuildCache returns the stored cache for spec, building it when absent
// or expired. Concurrent builds for the same spec are collapsed into one.
func GetOrBuildCache(ctx context.Context, spec *Spec) (*Cache, error) {
	cacheKey := spec.CacheKey()

	globalCacheStore.mu.RLock()
	cache, exists := globalCacheStore.caches[cacheKey]
	globalCacheStore.mu.RUnlock()

	if exists && !cache.IsExpired() {
		return cache, nil
	}

	result, err, _ := globalCacheStore.sf.Do(cacheKey, func() (interface{}, error) {
		globalCacheStore.mu.RLock()
		cache, exists := globalCacheStore.caches[cacheKey]
		globalCacheStore.mu.RUnlock()

		if exists && !cache.IsExpired() {
			return cache, nil
		}

		newCache, err := BuildCache(ctx, spec)
		if err != nil {
			return nil, err
		}

		globalCacheStore.mu.Lock()
		globalCacheStore.caches[cacheKey] = newCache
		globalCacheStore.mu.Unlock()

		return newCache, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Cache), nil
}

// InvalidateCache drops the stored cache for spec.
func InvalidateCache(spec *Spec) {
	cacheKey := spec.CacheKey()
	globalCacheStore.mu.Lock()
	delete(globalCacheStore.caches, cacheKey)
	globalCacheStore.mu.Unlock()
}
