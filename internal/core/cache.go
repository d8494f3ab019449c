// Package core provides the business logic and service layer for the academy system.
package core

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// CacheRepository defines the interface for caching operations.
// This follows the hexagonal architecture pattern where the core defines interfaces
// and the data layer provides implementations.
type CacheRepository interface {
	// Set stores a value in the cache with the given key and TTL.
	// If TTL is 0, the key will not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value from the cache by key.
	// Returns nil if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key from the cache.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Exists checks if a key exists in the cache.
	Exists(ctx context.Context, key string) (bool, error)

	// SetTTL updates the TTL for an existing key.
	// Returns true if the key exists and TTL was updated.
	SetTTL(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// SetIfNotExists atomically sets a key only if it doesn't already exist.
	// Returns true if the key was set, false if it already existed.
	// This is useful for implementing distributed locks and deduplication.
	SetIfNotExists(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Increment atomically increments the integer value at key and returns
	// the new value. Missing keys start from zero.
	Increment(ctx context.Context, key string) (int64, error)

	// Health checks the health of the cache connection.
	Health(ctx context.Context) error
}

// CatalogCache caches rendered catalog responses (branch, course, event and
// similar public listings) under version-stamped keys. Every write to a
// resource bumps that resource's version counter, which orphans all keys
// built against the previous version; orphaned entries age out via TTL
// instead of being deleted one by one.
type CatalogCache struct {
	cache CacheRepository
	ttl   time.Duration
}

// CatalogCacheConfig holds configuration for catalog response caching.
type CatalogCacheConfig struct {
	TTL time.Duration `json:"ttl"`
}

// DefaultCatalogCacheConfig returns a CatalogCacheConfig with sensible defaults.
func DefaultCatalogCacheConfig() CatalogCacheConfig {
	return CatalogCacheConfig{
		TTL: 10 * time.Minute,
	}
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(cache CacheRepository, cfg CatalogCacheConfig) *CatalogCache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultCatalogCacheConfig().TTL
	}
	return &CatalogCache{cache: cache, ttl: ttl}
}

// GetResponse retrieves a cached response for resource under the resource's
// current version. Returns nil on a miss.
func (c *CatalogCache) GetResponse(ctx context.Context, resource, requestKey string) ([]byte, error) {
	if resource == "" || requestKey == "" {
		return nil, nil
	}

	key, err := c.entryKey(ctx, resource, requestKey)
	if err != nil {
		return nil, err
	}
	return c.cache.Get(ctx, key)
}

// SetResponse stores a response for resource under the resource's current
// version.
func (c *CatalogCache) SetResponse(ctx context.Context, resource, requestKey string, value []byte) error {
	if resource == "" || requestKey == "" {
		return nil
	}

	key, err := c.entryKey(ctx, resource, requestKey)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, key, value, c.ttl)
}

// Invalidate bumps the version counter for resource. Existing entries keyed
// against older versions become unreachable immediately.
func (c *CatalogCache) Invalidate(ctx context.Context, resource string) error {
	if resource == "" {
		return nil
	}

	_, err := c.cache.Increment(ctx, c.versionKey(resource))
	if err != nil {
		return fmt.Errorf("bump catalog version for %s: %w", resource, err)
	}
	return nil
}

func (c *CatalogCache) entryKey(ctx context.Context, resource, requestKey string) (string, error) {
	version, err := c.currentVersion(ctx, resource)
	if err != nil {
		return "", err
	}
	return "catalog:" + resource + ":v" + strconv.FormatInt(version, 10) + ":" + requestKey, nil
}

func (c *CatalogCache) currentVersion(ctx context.Context, resource string) (int64, error) {
	raw, err := c.cache.Get(ctx, c.versionKey(resource))
	if err != nil {
		return 0, fmt.Errorf("read catalog version for %s: %w", resource, err)
	}
	if len(raw) == 0 {
		return 0, nil
	}
	version, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		// Corrupt counter; treat as unversioned rather than failing reads.
		return 0, nil
	}
	return version, nil
}

func (c *CatalogCache) versionKey(resource string) string {
	return "catalog:version:" + resource
}
