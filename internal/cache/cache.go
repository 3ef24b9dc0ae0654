// Package cache provides the caching layer for reference data that
// rarely changes, with in-memory and Redis backends behind one
// interface.
package cache

import (
	"context"
	"log/slog"
	"time"
)

// Cacher is the byte-oriented cache contract. Implementations must be
// safe for concurrent use.
type Cacher interface {
	// Get returns the value, or ErrCacheMiss when absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value. A zero ttl uses the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error

	// Has reports whether a live entry exists.
	Has(ctx context.Context, key string) (bool, error)

	// Close releases backend resources.
	Close() error
}

// Error is a sentinel cache error.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrCacheMiss   Error = "cache miss"
	ErrCacheClosed Error = "cache closed"
)

// Config selects and sizes the backend.
type Config struct {
	// RedisURL switches to the Redis backend when non-empty.
	RedisURL string

	// Prefix namespaces Redis keys.
	Prefix string

	// DefaultTTL applies when Set is called with a zero ttl.
	DefaultTTL time.Duration

	// MaxSize caps the memory backend's entry count (0 = unlimited).
	MaxSize int
}

// New builds the configured backend. A Redis connection failure falls
// back to the memory cache so a missing Redis never blocks startup.
func New(cfg Config) Cacher {
	if cfg.RedisURL != "" {
		c, err := NewRedisCache(RedisOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.DefaultTTL,
		})
		if err == nil {
			return c
		}
		slog.Warn("redis cache unavailable, using memory cache", "error", err)
	}

	return NewMemoryCache(MemoryOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: time.Minute,
	})
}
