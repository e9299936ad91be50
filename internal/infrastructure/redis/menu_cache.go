package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/menu"
)

var ErrCacheMiss = errors.New("キャッシュが見つかりません")

// MenuCache はレストランごとの提供可能メニューのキャッシュを管理する
type MenuCache struct {
	client *redis.Client
}

// NewMenuCache は新しいMenuCacheインスタンスを作成する
func NewMenuCache(client *redis.Client) *MenuCache {
	return &MenuCache{client: client}
}

// GetAvailable はレストランの提供可能メニューをキャッシュから取得する
func (c *MenuCache) GetAvailable(ctx context.Context, restaurantID string) ([]*menu.MenuItem, error) {
	key := c.availableKey(restaurantID)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	var items []*menu.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("キャッシュの復元に失敗: %w", err)
	}
	return items, nil
}

// SetAvailable はレストランの提供可能メニューをキャッシュに保存する
func (c *MenuCache) SetAvailable(ctx context.Context, restaurantID string, items []*menu.MenuItem, ttl time.Duration) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("キャッシュの変換に失敗: %w", err)
	}
	if err := c.client.Set(ctx, c.availableKey(restaurantID), data, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate はレストランのメニューキャッシュを無効化する
func (c *MenuCache) Invalidate(ctx context.Context, restaurantID string) error {
	if err := c.client.Del(ctx, c.availableKey(restaurantID)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *MenuCache) availableKey(restaurantID string) string {
	return fmt.Sprintf("menu:available:%s", restaurantID)
}
