// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

// Package cache provides caching for rendered content and query results.
// Two backends are available: a process-local memory cache and Redis for
// multi-instance deployments.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is the backend interface. All implementations are safe for
// concurrent use. Values are []byte so both backends share one contract.
type Cache interface {
	// Get returns the cached value, or ErrCacheMiss when absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A zero TTL uses the default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases resources held by the cache.
	Close() error
}

// Error is the error type for cache operations.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)

// Config selects and tunes the cache backend.
type Config struct {
	// RedisURL selects the Redis backend when non-empty, for example
	// redis://localhost:6379/0.
	RedisURL string

	// Prefix is prepended to every Redis key.
	Prefix string

	// DefaultTTL applies when Set is called with a zero TTL.
	DefaultTTL time.Duration

	// MaxSize bounds the memory cache entry count (0 = unlimited).
	MaxSize int

	// CleanupInterval is how often the memory cache sweeps expired
	// entries (0 = no sweeping).
	CleanupInterval time.Duration
}

// DefaultConfig returns the memory backend with an hour TTL.
func DefaultConfig() Config {
	return Config{
		DefaultTTL:      time.Hour,
		MaxSize:         10000,
		CleanupInterval: time.Minute,
	}
}

// New creates a cache from the configuration: Redis when a URL is
// configured, the in-process memory cache otherwise.
func New(cfg Config) (Cache, error) {
	if cfg.RedisURL != "" {
		c, err := NewRedisCache(cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL)
		if err != nil {
			return nil, fmt.Errorf("creating redis cache: %w", err)
		}
		return c, nil
	}
	return NewMemoryCache(cfg), nil
}

// Cache key builders. Keys are namespaced per site so invalidation can
// be scoped.

// PageKey is the cache key for a rendered page body.
func PageKey(siteID int64, path string) string {
	return fmt.Sprintf("page:%d:%s", siteID, path)
}

// MenuKey is the cache key for a site menu.
func MenuKey(siteID int64, slug string) string {
	return fmt.Sprintf("menu:%d:%s", siteID, slug)
}

// VarsKey is the cache key for a site's variables.
func VarsKey(siteID int64) string {
	return fmt.Sprintf("vars:%d", siteID)
}

// FeedKey is the cache key for a rendered RSS feed.
func FeedKey(siteID int64, name string) string {
	return fmt.Sprintf("feed:%d:%s", siteID, name)
}

// SitemapKey is the cache key for the rendered sitemap.
func SitemapKey(siteID int64) string {
	return fmt.Sprintf("sitemap:%d", siteID)
}
