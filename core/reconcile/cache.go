package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// PlanCache holds a computed plan for repeated read-only queries.
type PlanCache struct {
	// Plan is the cached plan.
	Plan *Plan

	// Built is the timestamp when this cache was built.
	Built time.Time

	// TTL is the time-to-live for this cache.
	TTL time.Duration
}

// IsExpired returns true if this cache has expired based on its TTL.
func (c *PlanCache) IsExpired() bool {
	if c.TTL == 0 {
		return true // No caching
	}
	return time.Since(c.Built) > c.TTL
}

// cacheStore holds all plan caches keyed by spec cache key.
type cacheStore struct {
	mu     sync.RWMutex
	caches map[string]*PlanCache
	sf     singleflight.Group
}

// globalCacheStore is the singleton cache store for all plans.
var globalCacheStore = &cacheStore{
	caches: make(map[string]*PlanCache),
}

// GetOrBuildPlan retrieves a plan for the given spec from the store,
// or builds a new one if it doesn't exist or has expired.
// Uses singleflight to prevent concurrent listings of the same worlds.
func GetOrBuildPlan(ctx context.Context, spec *Spec, ttl time.Duration) (*Plan, error) {
	cacheKey := spec.CacheKey()

	// Fast path: check if cache exists and is fresh
	globalCacheStore.mu.RLock()
	cache, exists := globalCacheStore.caches[cacheKey]
	globalCacheStore.mu.RUnlock()

	if exists && !cache.IsExpired() {
		return cache.Plan, nil
	}

	result, err, _ := globalCacheStore.sf.Do(cacheKey, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		globalCacheStore.mu.RLock()
		cache, exists := globalCacheStore.caches[cacheKey]
		globalCacheStore.mu.RUnlock()

		if exists && !cache.IsExpired() {
			return cache.Plan, nil
		}

		plan, err := ReconcileWithPlan(ctx, spec)
		if err != nil {
			return nil, err
		}

		globalCacheStore.mu.Lock()
		globalCacheStore.caches[cacheKey] = &PlanCache{
			Plan:  plan,
			Built: time.Now(),
			TTL:   ttl,
		}
		globalCacheStore.mu.Unlock()

		return plan, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*Plan), nil
}

// InvalidatePlan removes the cached plan for the given spec so the next
// GetOrBuildPlan lists both worlds again.
func InvalidatePlan(spec *Spec) {
	cacheKey := spec.CacheKey()
	globalCacheStore.mu.Lock()
	delete(globalCacheStore.caches, cacheKey)
	globalCacheStore.mu.Unlock()
}
