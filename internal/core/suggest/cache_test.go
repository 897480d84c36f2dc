package suggest

import (
	"context"
	"testing"
	"time"

	"meal-planner/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cacheConfig(maxSize int, ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.MaxSize = maxSize
	cfg.Cache.TTL = ttl
	cfg.Cache.CleanupInterval = time.Minute
	return cfg
}

func TestCacheManagerGetSet(t *testing.T) {
	m := NewCacheManager(cacheConfig(10, time.Hour))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()

	_, err := m.Get(ctx, "prompt-a")
	assert.Error(t, err)

	require.NoError(t, m.Set(ctx, "prompt-a", "Tacos"))

	value, err := m.Get(ctx, "prompt-a")
	require.NoError(t, err)
	assert.Equal(t, "Tacos", value)
}

func TestCacheManagerExpiry(t *testing.T) {
	m := NewCacheManager(cacheConfig(10, 10*time.Millisecond))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "prompt-a", "Tacos"))

	time.Sleep(20 * time.Millisecond)

	_, err := m.Get(ctx, "prompt-a")
	assert.Error(t, err)
}

func TestCacheManagerLRUEviction(t *testing.T) {
	m := NewCacheManager(cacheConfig(2, time.Hour))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "b", "2"))

	// 提高 a 的使用次數，讓 b 成為淘汰對象
	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", "3"))

	_, err = m.Get(ctx, "b")
	assert.Error(t, err)

	value, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", value)
}

func TestCacheManagerDisabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = false

	m := NewCacheManager(cfg)
	assert.Nil(t, m)

	// nil 管理器的操作是安全的 no-op
	_, err := m.Get(context.Background(), "prompt")
	assert.Error(t, err)
	assert.NoError(t, m.Set(context.Background(), "prompt", "value"))
	assert.NoError(t, m.Close())
}

func TestCacheManagerStats(t *testing.T) {
	m := NewCacheManager(cacheConfig(10, time.Hour))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", "1"))
	_, _ = m.Get(ctx, "a")
	_, _ = m.Get(ctx, "missing")

	stats := m.GetStats()
	assert.Equal(t, 1, stats["size"])
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
}
