// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"testing"
	"time"
)

func newTestCache() *MemoryCache {
	return NewMemoryCache(Config{DefaultTTL: time.Minute})
}

func TestMemoryCacheBasics(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()
	defer c.Close()

	if _, err := c.Get(ctx, "missing"); err != ErrCacheMiss {
		t.Errorf("Get(missing) err = %v, want ErrCacheMiss", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Get = %q", got)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "key"); err != ErrCacheMiss {
		t.Errorf("Get after delete err = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()
	defer c.Close()

	if err := c.Set(ctx, "short", []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := c.Get(ctx, "short"); err != ErrCacheMiss {
		t.Errorf("expired entry err = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheClear(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()
	defer c.Close()

	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, key, []byte(key), 0); err != nil {
			t.Fatalf("Set %s: %v", key, err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for _, key := range []string{"a", "b", "c"} {
		if _, err := c.Get(ctx, key); err != ErrCacheMiss {
			t.Errorf("Get(%s) after clear err = %v", key, err)
		}
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()
	c.Close()

	if err := c.Set(ctx, "key", []byte("x"), 0); err != ErrCacheClosed {
		t.Errorf("Set on closed err = %v, want ErrCacheClosed", err)
	}
	if _, err := c.Get(ctx, "key"); err != ErrCacheClosed {
		t.Errorf("Get on closed err = %v, want ErrCacheClosed", err)
	}
	// Closing twice is fine
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestMemoryCacheValueIsolation(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()
	defer c.Close()

	original := []byte("immutable")
	if err := c.Set(ctx, "key", original, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	original[0] = 'X'

	got, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "immutable" {
		t.Errorf("stored value mutated: %q", got)
	}
	got[0] = 'Y'

	again, _ := c.Get(ctx, "key")
	if string(again) != "immutable" {
		t.Errorf("returned value aliased the cache: %q", again)
	}
}

func TestNewSelectsBackend(t *testing.T) {
	c, err := New(Config{DefaultTTL: time.Minute})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()
	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("New without RedisURL = %T, want *MemoryCache", c)
	}
}

func TestKeys(t *testing.T) {
	if got := PageKey(3, "/tech/post.html"); got != "page:3:/tech/post.html" {
		t.Errorf("PageKey = %q", got)
	}
	if got := MenuKey(3, "main-nav"); got != "menu:3:main-nav" {
		t.Errorf("MenuKey = %q", got)
	}
	if got := VarsKey(7); got != "vars:7" {
		t.Errorf("VarsKey = %q", got)
	}
	if got := FeedKey(1, "site"); got != "feed:1:site" {
		t.Errorf("FeedKey = %q", got)
	}
	if got := SitemapKey(2); got != "sitemap:2" {
		t.Errorf("SitemapKey = %q", got)
	}
}

type testItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestTypedCache(t *testing.T) {
	ctx := context.Background()
	backend := newTestCache()
	defer backend.Close()
	c := NewTypedCache[testItem](backend, time.Minute)

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("Get(missing) ok = true")
	}

	item := &testItem{Name: "widget", Count: 3}
	if err := c.Set(ctx, "item", item); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := c.Get(ctx, "item")
	if !ok {
		t.Fatal("Get ok = false")
	}
	if got.Name != "widget" || got.Count != 3 {
		t.Errorf("Get = %+v", got)
	}
}

func TestTypedCacheGetOrSet(t *testing.T) {
	ctx := context.Background()
	backend := newTestCache()
	defer backend.Close()
	c := NewTypedCache[testItem](backend, time.Minute)

	calls := 0
	fn := func() (*testItem, error) {
		calls++
		return &testItem{Name: "computed"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.GetOrSet(ctx, "compute", fn)
		if err != nil {
			t.Fatalf("GetOrSet: %v", err)
		}
		if got.Name != "computed" {
			t.Errorf("GetOrSet = %+v", got)
		}
	}
	if calls != 1 {
		t.Errorf("compute fn called %d times, want 1", calls)
	}
}
