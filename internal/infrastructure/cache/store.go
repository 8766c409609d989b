package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/johnquangdev/meetmind/pkg/config"
)

// Store is a string key-value cache with per-entry expiry
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NewStore builds the backend named by cfg.Cache.Driver. The "none" driver
// returns a nil Store, which callers treat as caching disabled.
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Cache.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(ctx, &cfg.Redis, cfg.GetRedisAddr())
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}
