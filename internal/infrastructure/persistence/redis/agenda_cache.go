package redis

import (
	"context"
	"time"

	"github.com/studyhall/studyhall/internal/domain/agenda"
	"github.com/studyhall/studyhall/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// AGENDA INDEX CACHE
// ══════════════════════════════════════════════════════════════════════════════

// AgendaCache stores the per-user date index between mutations. The TTL is a
// safety net only; correctness comes from invalidation on every collection
// change event.
type AgendaCache struct {
	cache   *Cache
	ttl     time.Duration
	retrier *retry.Retrier
}

// NewAgendaCache creates an agenda index cache with the given TTL.
func NewAgendaCache(cache *Cache, ttl time.Duration) *AgendaCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &AgendaCache{
		cache:   cache,
		ttl:     ttl,
		retrier: retry.CacheRetrier(),
	}
}

func agendaKey(userID string) string {
	return "agenda:index:" + userID
}

// StoreIndex caches a user's date index.
func (c *AgendaCache) StoreIndex(ctx context.Context, userID string, idx agenda.Index) error {
	return c.retrier.Do(ctx, func(ctx context.Context) error {
		return retry.Retryable(c.cache.Set(ctx, agendaKey(userID), idx, c.ttl))
	})
}

// GetIndex loads a user's cached date index. The second return value is false
// on a miss or any cache failure.
func (c *AgendaCache) GetIndex(ctx context.Context, userID string) (agenda.Index, bool) {
	var idx agenda.Index
	if err := c.cache.Get(ctx, agendaKey(userID), &idx); err != nil {
		return nil, false
	}
	return idx, true
}

// Invalidate drops a user's cached index. Called on every mutation of any
// source collection.
func (c *AgendaCache) Invalidate(ctx context.Context, userID string) error {
	return c.retrier.Do(ctx, func(ctx context.Context) error {
		return retry.Retryable(c.cache.Delete(ctx, agendaKey(userID)))
	})
}
