package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victoriaparraf/Goyos-Secret/internal/config"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/menu"
)

func TestLockManager_AcquireLock(t *testing.T) {
	client, err := NewClient(&config.RedisConfig{Host: "localhost", Port: "6379"})
	if err != nil {
		t.Skip("Redis not available")
	}
	defer client.Close()

	ctx := context.Background()
	manager := NewLockManager(client)

	t.Run("ロックを取得できる", func(t *testing.T) {
		lock, err := manager.AcquireLock(ctx, "test-key-1", 5*time.Second)
		require.NoError(t, err)
		require.NotNil(t, lock)
		defer lock.Release(ctx)
	})

	t.Run("同じキーのロックは取得できない", func(t *testing.T) {
		lock1, err := manager.AcquireLock(ctx, "test-key-2", 5*time.Second)
		require.NoError(t, err)
		defer lock1.Release(ctx)

		lock2, err := manager.AcquireLock(ctx, "test-key-2", 5*time.Second)
		assert.ErrorIs(t, err, ErrLockNotAcquired)
		assert.Nil(t, lock2)
	})

	t.Run("解放後は再取得できる", func(t *testing.T) {
		lock1, err := manager.AcquireLock(ctx, "test-key-3", 5*time.Second)
		require.NoError(t, err)

		err = lock1.Release(ctx)
		require.NoError(t, err)

		lock2, err := manager.AcquireLock(ctx, "test-key-3", 5*time.Second)
		require.NoError(t, err)
		defer lock2.Release(ctx)
	})

	t.Run("リトライで取得できる", func(t *testing.T) {
		lock1, err := manager.AcquireLock(ctx, "test-key-4", 500*time.Millisecond)
		require.NoError(t, err)

		go func() {
			time.Sleep(300 * time.Millisecond)
			lock1.Release(ctx)
		}()

		lock2, err := manager.AcquireLockWithRetry(ctx, "test-key-4", 5*time.Second, 5, 100*time.Millisecond)
		require.NoError(t, err)
		defer lock2.Release(ctx)
	})

	t.Run("TTL満了後は自動解放される", func(t *testing.T) {
		_, err := manager.AcquireLock(ctx, "test-key-5", 200*time.Millisecond)
		require.NoError(t, err)

		time.Sleep(300 * time.Millisecond)

		lock2, err := manager.AcquireLock(ctx, "test-key-5", 1*time.Second)
		require.NoError(t, err)
		defer lock2.Release(ctx)
	})
}

func TestMenuCache(t *testing.T) {
	client, err := NewClient(&config.RedisConfig{Host: "localhost", Port: "6379"})
	if err != nil {
		t.Skip("Redis not available")
	}
	defer client.Close()

	ctx := context.Background()
	cache := NewMenuCache(client)

	t.Run("未設定のキーはキャッシュミス", func(t *testing.T) {
		_, err := cache.GetAvailable(ctx, "rest-missing")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("保存と取得", func(t *testing.T) {
		defer cache.Invalidate(ctx, "rest-1")

		items := []*menu.MenuItem{
			{ID: "dish-1", RestaurantID: "rest-1", Name: "Paella", AvailableStock: 3},
		}
		err := cache.SetAvailable(ctx, "rest-1", items, 1*time.Minute)
		require.NoError(t, err)

		got, err := cache.GetAvailable(ctx, "rest-1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "dish-1", got[0].ID)
	})

	t.Run("無効化後はキャッシュミス", func(t *testing.T) {
		err := cache.SetAvailable(ctx, "rest-2", nil, 1*time.Minute)
		require.NoError(t, err)

		err = cache.Invalidate(ctx, "rest-2")
		require.NoError(t, err)

		_, err = cache.GetAvailable(ctx, "rest-2")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}
