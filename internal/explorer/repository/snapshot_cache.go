package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inmoview/explorer-backend/internal/explorer/domain"
)

const snapshotKeyPrefix = "explorer:snapshot:" // explorer:snapshot:{project_slug}

// CachedSource decorates a snapshot source with a redis JSON cache. Caching
// lives entirely at the I/O boundary: the core transforms stay pure and
// each request still sees exactly one snapshot. Admin writes call
// Invalidate so public traffic never serves an edit longer than the TTL.
type snapshotLoader interface {
	ProjectSnapshot(ctx context.Context, slug string) (*domain.Snapshot, error)
}

type CachedSource struct {
	inner  snapshotLoader
	client *redis.Client
	ttl    time.Duration
}

func NewCachedSource(inner snapshotLoader, client *redis.Client, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedSource{inner: inner, client: client, ttl: ttl}
}

// ProjectSnapshot returns the cached snapshot when present, falling back to
// Postgres and filling the cache on miss. Cache errors degrade to a direct
// read; they never fail the request.
func (c *CachedSource) ProjectSnapshot(ctx context.Context, slug string) (*domain.Snapshot, error) {
	key := snapshotKey(slug)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var snap domain.Snapshot
		if err := json.Unmarshal(data, &snap); err == nil {
			return &snap, nil
		}
		// Corrupted entry, drop it and fall through to Postgres.
		c.client.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[warn] operation=snapshot_cache_get project=%s error=%v", slug, err)
	}

	snap, err := c.inner.ProjectSnapshot(ctx, slug)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(snap); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			log.Printf("[warn] operation=snapshot_cache_set project=%s error=%v", slug, err)
		}
	}
	return snap, nil
}

// Invalidate drops the cached snapshot for a project.
func (c *CachedSource) Invalidate(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, snapshotKey(slug)).Err(); err != nil {
		return fmt.Errorf("invalidate snapshot for %s: %w", slug, err)
	}
	return nil
}

// Warm re-fetches a project from Postgres and refreshes the cache entry.
func (c *CachedSource) Warm(ctx context.Context, slug string) error {
	snap, err := c.inner.ProjectSnapshot(ctx, slug)
	if err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot for %s: %w", slug, err)
	}
	return c.client.Set(ctx, snapshotKey(slug), data, c.ttl).Err()
}

func snapshotKey(slug string) string {
	return snapshotKeyPrefix + slug
}
