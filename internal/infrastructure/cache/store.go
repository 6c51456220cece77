package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/meetwise/meetwise/pkg/config"
)

// Store is a key-value store with expiration, used for OAuth state tokens
// and other short-lived values.
type Store interface {
	// Set stores a value under key for the given duration
	Set(ctx context.Context, key, value string, expiration time.Duration) error

	// Get retrieves a value; the bool reports whether the key was present
	Get(ctx context.Context, key string) (string, bool, error)

	// Delete removes a key
	Delete(ctx context.Context, key string) error
}

// New constructs the store selected by CACHE_BACKEND.
func New(cfg *config.Config) (Store, error) {
	switch cfg.Cache.Backend {
	case "redis":
		return NewRedisStore(cfg)
	case "memory", "":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
