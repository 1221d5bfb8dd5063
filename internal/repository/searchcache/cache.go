// Package searchcache stores serialized search responses in the key-value
// store under a dedicated namespace with per-entry TTLs.
package searchcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/promptdex/internal/db"
	"github.com/kailas-cloud/promptdex/internal/domain"
)

const keyPrefix = domain.KeyPrefix + "search:"

// store is the narrow slice of the database this cache needs.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Cache is the search response cache backed by the key-value store.
type Cache struct {
	store store
}

func New(s db.KVStore) *Cache {
	return &Cache{store: s}
}

// Get returns the cached payload, or domain.ErrNotFound on a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.store.Get(ctx, keyPrefix+key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return data, nil
}

// Set stores the payload under the key for the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.store.SetWithTTL(ctx, keyPrefix+key, value, ttl); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes one entry. Missing entries are not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.store.Del(ctx, keyPrefix+key); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// Clear removes every cached search response. Other namespaces in the
// shared store are untouched.
func (c *Cache) Clear(ctx context.Context) error {
	keys, err := c.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("cache scan: %w", err)
	}
	for _, key := range keys {
		if err := c.store.Del(ctx, key); err != nil {
			return fmt.Errorf("cache clear %s: %w", key, err)
		}
	}
	return nil
}
