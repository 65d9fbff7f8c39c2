package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// AlbumLikesTTL 专辑点赞数缓存有效期
const AlbumLikesTTL = 30 * time.Minute

// AlbumLikesKey 根据专辑ID生成点赞数的Redis键
func AlbumLikesKey(albumID string) string {
	return fmt.Sprintf("album-likes:%s", albumID)
}

// AlbumLikesCache stores album like counts in Redis.
type AlbumLikesCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAlbumLikesCache creates a cache with the default TTL.
func NewAlbumLikesCache(client *redis.Client) *AlbumLikesCache {
	return &AlbumLikesCache{client: client, ttl: AlbumLikesTTL}
}

// GetAlbumLikes reports a miss with ok=false and a nil error.
func (c *AlbumLikesCache) GetAlbumLikes(ctx context.Context, albumID string) (int, bool, error) {
	likes, err := c.client.Get(ctx, AlbumLikesKey(albumID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get album likes from cache: %w", err)
	}
	return likes, true, nil
}

// SetAlbumLikes caches the count for AlbumLikesTTL.
func (c *AlbumLikesCache) SetAlbumLikes(ctx context.Context, albumID string, likes int) error {
	if err := c.client.Set(ctx, AlbumLikesKey(albumID), likes, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache album likes: %w", err)
	}
	return nil
}

// DeleteAlbumLikes drops the cached count.
func (c *AlbumLikesCache) DeleteAlbumLikes(ctx context.Context, albumID string) error {
	if err := c.client.Del(ctx, AlbumLikesKey(albumID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate album likes: %w", err)
	}
	return nil
}
