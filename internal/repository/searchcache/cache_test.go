package searchcache

import (
	"context"
	"errors"
	"path"
	"testing"
	"time"

	"github.com/kailas-cloud/promptdex/internal/db"
	"github.com/kailas-cloud/promptdex/internal/domain"
)

type memKV struct {
	entries map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{entries: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := m.entries[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return data, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.entries[key] = value
	return nil
}

func (m *memKV) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.entries[key] = value
	return nil
}

func (m *memKV) Del(_ context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func (m *memKV) Scan(_ context.Context, pattern string) ([]string, error) {
	var keys []string
	for key := range m.entries {
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func TestCacheRoundTrip(t *testing.T) {
	cache := New(newMemKV())
	ctx := context.Background()

	if err := cache.Set(ctx, "abc", []byte(`{"total":1}`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, err := cache.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != `{"total":1}` {
		t.Errorf("Get = %q, want stored payload", data)
	}
}

func TestCacheMiss(t *testing.T) {
	cache := New(newMemKV())

	if _, err := cache.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get miss error = %v, want domain.ErrNotFound", err)
	}
}

func TestCacheDelete(t *testing.T) {
	cache := New(newMemKV())
	ctx := context.Background()

	if err := cache.Set(ctx, "abc", []byte("x"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := cache.Delete(ctx, "abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := cache.Get(ctx, "abc"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get after delete = %v, want domain.ErrNotFound", err)
	}

	if err := cache.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete of missing key: %v, want nil", err)
	}
}

func TestCacheClearScopedToNamespace(t *testing.T) {
	kv := newMemKV()
	cache := New(kv)
	ctx := context.Background()

	if err := cache.Set(ctx, "a", []byte("1"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := cache.Set(ctx, "b", []byte("2"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// A foreign key in the shared store must survive a cache clear.
	if err := kv.Set(ctx, domain.KeyPrefix+"prompt:p1", []byte("keep")); err != nil {
		t.Fatalf("seed foreign key: %v", err)
	}

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if _, err := cache.Get(ctx, "a"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("entry a survived clear")
	}
	if _, err := cache.Get(ctx, "b"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("entry b survived clear")
	}
	if _, ok := kv.entries[domain.KeyPrefix+"prompt:p1"]; !ok {
		t.Errorf("clear removed a key outside the search namespace")
	}
}
