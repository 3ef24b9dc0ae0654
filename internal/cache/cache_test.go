package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { c.Close() })
	return c
}

func TestMemoryCacheGetSet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if _, err := c.Get(ctx, "absent"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("got %q, want v", got)
	}
}

func TestMemoryCacheExpiration(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected expired entry to miss, got %v", err)
	}
	has, err := c.Has(ctx, "k")
	if err != nil || has {
		t.Errorf("Has = %v, %v; want false, nil", has, err)
	}
}

func TestMemoryCacheDeleteAndClear(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := c.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	if err := c.Delete(ctx, "k0"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if has, _ := c.Has(ctx, "k0"); has {
		t.Error("deleted key still present")
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if has, _ := c.Has(ctx, "k1"); has {
		t.Error("cleared key still present")
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute})
	c.Close()

	if _, err := c.Get(context.Background(), "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("expected ErrCacheClosed, got %v", err)
	}
	if err := c.Set(context.Background(), "k", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("expected ErrCacheClosed, got %v", err)
	}
}

func TestMemoryCacheCopiesValues(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	src := []byte("original")
	if err := c.Set(ctx, "k", src, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	src[0] = 'X'

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "original" {
		t.Errorf("stored value mutated: %q", got)
	}

	got[0] = 'Y'
	again, _ := c.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("returned value aliased: %q", again)
	}
}

func TestTypedCache(t *testing.T) {
	type widget struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	tc := NewTypedCache[widget](newTestCache(t), time.Minute)
	ctx := context.Background()

	if _, ok := tc.Get(ctx, "w"); ok {
		t.Error("expected miss on empty cache")
	}

	if err := tc.Set(ctx, "w", &widget{Name: "gear", Count: 3}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := tc.Get(ctx, "w")
	if !ok || got.Name != "gear" || got.Count != 3 {
		t.Errorf("Get = %+v, %v", got, ok)
	}
}

func TestTypedCacheGetOrSet(t *testing.T) {
	type widget struct{ Name string }

	tc := NewTypedCache[widget](newTestCache(t), time.Minute)
	ctx := context.Background()
	calls := 0
	compute := func() (*widget, error) {
		calls++
		return &widget{Name: "made"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := tc.GetOrSet(ctx, "w", compute)
		if err != nil {
			t.Fatalf("GetOrSet: %v", err)
		}
		if got.Name != "made" {
			t.Errorf("got %+v", got)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}

	if _, err := tc.GetOrSet(ctx, "err", func() (*widget, error) {
		return nil, errors.New("boom")
	}); err == nil {
		t.Error("expected compute error to propagate")
	}
}

func TestNewFallsBackToMemory(t *testing.T) {
	c := New(Config{RedisURL: "redis://127.0.0.1:1/0", DefaultTTL: time.Minute})
	defer c.Close()
	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("expected memory fallback, got %T", c)
	}
}
