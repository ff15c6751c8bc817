package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmoview/explorer-backend/internal/explorer/domain"
)

type stubLoader struct {
	snap  *domain.Snapshot
	err   error
	calls int
}

func (s *stubLoader) ProjectSnapshot(ctx context.Context, slug string) (*domain.Snapshot, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.snap, nil
}

func setupCache(t *testing.T, inner *stubLoader, ttl time.Duration) (*CachedSource, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCachedSource(inner, client, ttl), mr
}

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Project: domain.Project{ID: "proj-1", Slug: "amvt", Name: "Altos del Valle", Type: domain.ProjectLots},
		Layers: []domain.Layer{
			{ID: "zone", ProjectID: "proj-1", Type: domain.LayerZone, Slug: "lotes", Name: "Lotes"},
		},
		Media: []domain.Media{
			{ID: "m1", ProjectID: "proj-1", Purpose: domain.PurposeBackground, Type: domain.MediaImage, URL: "u"},
		},
	}
}

func TestCachedSource_MissFillsThenHits(t *testing.T) {
	inner := &stubLoader{snap: testSnapshot()}
	cache, mr := setupCache(t, inner, time.Minute)
	ctx := context.Background()

	first, err := cache.ProjectSnapshot(ctx, "amvt")
	require.NoError(t, err)
	assert.Equal(t, "amvt", first.Project.Slug)
	assert.Equal(t, 1, inner.calls)
	assert.True(t, mr.Exists("explorer:snapshot:amvt"))

	second, err := cache.ProjectSnapshot(ctx, "amvt")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls, "hit must not touch the inner source")
	assert.Equal(t, first.Project, second.Project)
	assert.Equal(t, first.Layers, second.Layers)
}

func TestCachedSource_InnerErrorNotCached(t *testing.T) {
	inner := &stubLoader{err: domain.ErrProjectNotFound}
	cache, mr := setupCache(t, inner, time.Minute)

	_, err := cache.ProjectSnapshot(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.False(t, mr.Exists("explorer:snapshot:missing"))
}

func TestCachedSource_CorruptedEntryFallsThrough(t *testing.T) {
	inner := &stubLoader{snap: testSnapshot()}
	cache, mr := setupCache(t, inner, time.Minute)
	require.NoError(t, mr.Set("explorer:snapshot:amvt", "{not json"))

	snap, err := cache.ProjectSnapshot(context.Background(), "amvt")
	require.NoError(t, err)
	assert.Equal(t, "amvt", snap.Project.Slug)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedSource_Invalidate(t *testing.T) {
	inner := &stubLoader{snap: testSnapshot()}
	cache, mr := setupCache(t, inner, time.Minute)
	ctx := context.Background()

	_, err := cache.ProjectSnapshot(ctx, "amvt")
	require.NoError(t, err)
	require.True(t, mr.Exists("explorer:snapshot:amvt"))

	require.NoError(t, cache.Invalidate(ctx, "amvt"))
	assert.False(t, mr.Exists("explorer:snapshot:amvt"))

	_, err = cache.ProjectSnapshot(ctx, "amvt")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedSource_Warm(t *testing.T) {
	inner := &stubLoader{snap: testSnapshot()}
	cache, mr := setupCache(t, inner, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Warm(ctx, "amvt"))
	assert.Equal(t, 1, inner.calls)
	assert.True(t, mr.Exists("explorer:snapshot:amvt"))

	// A read right after warming is served from the cache.
	_, err := cache.ProjectSnapshot(ctx, "amvt")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedSource_WarmPropagatesLoadError(t *testing.T) {
	inner := &stubLoader{err: errors.New("db down")}
	cache, _ := setupCache(t, inner, time.Minute)

	err := cache.Warm(context.Background(), "amvt")
	assert.Error(t, err)
}

func TestCachedSource_EntryExpires(t *testing.T) {
	inner := &stubLoader{snap: testSnapshot()}
	cache, mr := setupCache(t, inner, time.Second)
	ctx := context.Background()

	_, err := cache.ProjectSnapshot(ctx, "amvt")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = cache.ProjectSnapshot(ctx, "amvt")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}
