package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

func TestAlbumLikesKey(t *testing.T) {
	if got := AlbumLikesKey("album-123"); got != "album-likes:album-123" {
		t.Errorf("unexpected key %s", got)
	}
}

func TestAlbumLikesCacheUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewAlbumLikesCache(client)
	ctx := context.Background()

	if _, ok, err := c.GetAlbumLikes(ctx, "album-1"); err == nil || ok {
		t.Errorf("expected an error from an unreachable server, got ok=%v err=%v", ok, err)
	}
	if err := c.SetAlbumLikes(ctx, "album-1", 3); err == nil {
		t.Error("expected set to fail")
	}
	if err := c.DeleteAlbumLikes(ctx, "album-1"); err == nil {
		t.Error("expected delete to fail")
	}
	if err := CheckRedis(ctx, client); err == nil {
		t.Error("expected health check to fail")
	}
}

func TestCheckRedisNilClient(t *testing.T) {
	if err := CheckRedis(context.Background(), nil); err == nil {
		t.Error("expected an error for a nil client")
	}
}
