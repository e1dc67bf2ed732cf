package dsp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

func TestCacheFactory_MemoryCache(t *testing.T) {
	t.Parallel()

	cache, err := dsp.NewCacheFromConfig(context.Background(), &dsp.CacheConfig{
		Type:   dsp.CacheTypeMemory,
		Memory: &dsp.MemoryCacheConfig{MaxSize: 100},
	})
	require.NoError(t, err)
	require.IsType(t, &dsp.MemoryCache{}, cache)

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "test-key", &dsp.CacheEntry{Data: []byte("test data")}))

	retrieved, err := cache.Get(ctx, "test-key")
	require.NoError(t, err)
	assert.Equal(t, []byte("test data"), retrieved.Data)
}

func TestCacheFactory_Defaults(t *testing.T) {
	t.Parallel()

	cache, err := dsp.NewCacheFromConfig(context.Background(), nil)
	require.NoError(t, err)
	assert.IsType(t, &dsp.MemoryCache{}, cache)
}

func TestCacheFactory_NoOpCache(t *testing.T) {
	t.Parallel()

	cache, err := dsp.NewCacheFromConfig(context.Background(), &dsp.CacheConfig{Type: dsp.CacheTypeNone})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "test-key", &dsp.CacheEntry{Data: []byte("x")}))

	_, err = cache.Get(ctx, "test-key")
	require.ErrorIs(t, err, dsp.ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "test-key"))
	require.NoError(t, cache.Delete(ctx, "test-key"))
	require.NoError(t, cache.Clear(ctx))
}

func TestCacheFactory_Errors(t *testing.T) {
	t.Parallel()

	_, err := dsp.NewCacheFromConfig(context.Background(), &dsp.CacheConfig{Type: dsp.CacheTypeNATS})
	require.ErrorIs(t, err, dsp.ErrNATSConfigRequired)

	_, err = dsp.NewCacheFromConfig(context.Background(), &dsp.CacheConfig{Type: dsp.CacheTypeNATS, NATS: &dsp.NATSKVConfig{}})
	require.ErrorIs(t, err, dsp.ErrNATSURLRequired)

	_, err = dsp.NewCacheFromConfig(context.Background(), &dsp.CacheConfig{Type: "redis"})
	require.ErrorIs(t, err, dsp.ErrUnknownCacheType)
}

func TestCacheBuilder(t *testing.T) {
	t.Parallel()

	builder := dsp.NewCacheBuilder().
		WithType(dsp.CacheTypeMemory).
		WithMemoryConfig(5)

	assert.Equal(t, 5, builder.Config().Memory.MaxSize)

	cache, err := builder.Build(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &dsp.MemoryCache{}, cache)
}

func TestCacheChain(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l1 := dsp.NewMemoryCache(10)
	l2 := dsp.NewMemoryCache(10)
	chain := dsp.NewCacheChain(l1, l2)

	require.NoError(t, l2.Set(ctx, "key", &dsp.CacheEntry{Data: []byte("from l2")}))
	assert.False(t, l1.Has(ctx, "key"))

	entry, err := chain.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("from l2"), entry.Data)
	assert.True(t, l1.Has(ctx, "key"), "l1 populated on l2 hit")

	require.NoError(t, chain.Delete(ctx, "key"))
	assert.False(t, chain.Has(ctx, "key"))

	_, err = chain.Get(ctx, "key")
	require.ErrorIs(t, err, dsp.ErrKeyNotFoundInAnyCache)

	require.NoError(t, chain.Set(ctx, "other", &dsp.CacheEntry{Data: []byte("both")}))
	assert.True(t, l1.Has(ctx, "other"))
	assert.True(t, l2.Has(ctx, "other"))

	require.NoError(t, chain.Clear(ctx))
	assert.False(t, chain.Has(ctx, "other"))
}
