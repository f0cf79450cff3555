package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthlab-hq/growth-backend/internal/quadrant/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*CacheRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheRepository(client, ttl), mr
}

func TestCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, 0)

	score := 72.5
	archetype := domain.ArchetypeMachine
	placement := &domain.Placement{
		ExecutionScore:   &score,
		PositioningScore: &score,
		Archetype:        &archetype,
		Completeness: map[domain.Tool]bool{
			domain.ToolAssessment: true,
			domain.ToolCalls:      false,
			domain.ToolBriefs:     false,
			domain.ToolVisibility: true,
		},
		CompletedCount: 2,
		TotalTools:     4,
	}

	require.NoError(t, cache.Set(context.Background(), "uid-1", placement))

	got, err := cache.Get(context.Background(), "uid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, placement, got)
}

func TestCache_MissIsNilNotError(t *testing.T) {
	cache, _ := newTestCache(t, 0)

	got, err := cache.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_EntryExpires(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)

	require.NoError(t, cache.Set(context.Background(), "uid-1", &domain.Placement{TotalTools: 4}))

	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_KeysAreNamespacedPerUser(t *testing.T) {
	cache, mr := newTestCache(t, 0)

	require.NoError(t, cache.Set(context.Background(), "uid-1", &domain.Placement{TotalTools: 4}))

	assert.True(t, mr.Exists("growth:quadrant:uid-1"))

	got, err := cache.Get(context.Background(), "uid-2")
	require.NoError(t, err)
	assert.Nil(t, got)
}
