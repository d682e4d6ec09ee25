package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryReportCache_GetSet(t *testing.T) {
	cache := NewInMemoryReportCache()
	defer cache.Close()

	ctx := context.Background()

	t.Run("miss on unknown key", func(t *testing.T) {
		payload, found, err := cache.Get(ctx, "unknown")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, payload)
	})

	t.Run("round-trips a stored payload", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "dashboard:u1:monthly:Sep-2025", []byte(`{"total":42}`), time.Hour))

		payload, found, err := cache.Get(ctx, "dashboard:u1:monthly:Sep-2025")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte(`{"total":42}`), payload)
	})

	t.Run("overwrites an existing key", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "key", []byte("old"), time.Hour))
		require.NoError(t, cache.Set(ctx, "key", []byte("new"), time.Hour))

		payload, found, err := cache.Get(ctx, "key")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("new"), payload)
	})

	t.Run("misses after expiration", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "short-lived", []byte("x"), 10*time.Millisecond))

		time.Sleep(20 * time.Millisecond)

		_, found, err := cache.Get(ctx, "short-lived")
		require.NoError(t, err)
		assert.False(t, found, "expired entry should read as a miss")
	})
}

func TestInMemoryReportCache_Delete(t *testing.T) {
	cache := NewInMemoryReportCache()
	defer cache.Close()

	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", []byte("x"), time.Hour))
	require.NoError(t, cache.Delete(ctx, "key"))

	_, found, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting a missing key is not an error.
	assert.NoError(t, cache.Delete(ctx, "key"))
}

func TestInMemoryReportCache_Cleanup(t *testing.T) {
	cache := NewInMemoryReportCache()
	defer cache.Close()

	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short-lived-1", []byte("x"), 10*time.Millisecond))
	require.NoError(t, cache.Set(ctx, "short-lived-2", []byte("x"), 10*time.Millisecond))
	require.NoError(t, cache.Set(ctx, "long-lived", []byte("x"), time.Hour))

	assert.Equal(t, 3, cache.Size())

	time.Sleep(20 * time.Millisecond)
	cache.cleanup()

	assert.Equal(t, 1, cache.Size())

	_, found, err := cache.Get(ctx, "long-lived")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestInMemoryReportCache_ConcurrentAccess(t *testing.T) {
	cache := NewInMemoryReportCache()
	defer cache.Close()

	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = cache.Set(ctx, "shared", []byte("payload"), time.Hour)
		}()
		go func() {
			defer wg.Done()
			_, _, _ = cache.Get(ctx, "shared")
		}()
	}
	wg.Wait()

	payload, found, err := cache.Get(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("payload"), payload)
}

func TestInMemoryReportCache_Close(t *testing.T) {
	cache := NewInMemoryReportCache()

	err := cache.Close()
	assert.NoError(t, err)

	// Multiple closes should be safe.
	err = cache.Close()
	assert.NoError(t, err)
}

func TestReportCacheFactory_CreateInMemoryCache(t *testing.T) {
	factory := NewReportCacheFactory(configRedisFixture())

	cache := factory.CreateInMemoryCache()
	require.NotNil(t, cache)

	inMemory, ok := cache.(*InMemoryReportCache)
	require.True(t, ok)
	defer inMemory.Close()

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "key", []byte("x"), time.Hour))
	_, found, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, found)
}
