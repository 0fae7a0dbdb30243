package engine

import (
	"context"
	"testing"

	pkgcache "emailengine/pkg/cache"
)

func TestValidatePopulatesBackingCacheOnMiss(t *testing.T) {
	resolver := stubResolver{mx: map[string][]string{"example.com": {"10 mx.example.com."}}}
	e := newTestEngine(resolver)
	backing := pkgcache.NewMockCache()
	e.ResultBackingCache = backing

	if _, err := e.Validate(context.Background(), "user@example.com", DefaultOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	key := DefaultOptions().cacheKey("user@example.com")
	if _, ok := e.getFromBackingCache(context.Background(), key); !ok {
		t.Fatal("expected the backing cache to be populated after Validate")
	}
}

func TestValidateServesFromBackingCacheWhenInProcessCacheIsEmpty(t *testing.T) {
	resolver := stubResolver{mx: map[string][]string{"example.com": {"10 mx.example.com."}}}
	e := newTestEngine(resolver)
	backing := pkgcache.NewMockCache()
	e.ResultBackingCache = backing

	key := DefaultOptions().cacheKey("user@example.com")
	seeded, err := e.computeValidation(context.Background(), "user@example.com", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e.resultCache.Delete(key)
	e.setBackingCache(context.Background(), key, seeded)

	result, err := e.Validate(context.Background(), "user@example.com", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != seeded.Score {
		t.Errorf("Score = %d, want %d from the backing cache", result.Score, seeded.Score)
	}
}
