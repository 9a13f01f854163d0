package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Cache is the projection cache used by the read paths. Every write
// that removes or rewrites a row must invalidate through it; a nil
// cache disables both sides.
type Cache interface {
	Get(ctx context.Context, key string, value interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

// dropCachedKeys removes the given keys, logging failures instead of
// propagating them. Cache trouble must never fail a completed write.
func dropCachedKeys(ctx context.Context, c Cache, keys ...string) {
	if c == nil {
		return
	}
	for _, key := range keys {
		if err := c.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to invalidate cached projection")
		}
	}
}
