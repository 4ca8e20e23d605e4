package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// FriendCache caches the circle of ids (friends plus self) the feed
// assembler resolves per request. Misses fall through to the user store.
type FriendCache interface {
	Get(ctx context.Context, userID string) ([]string, bool)
	Set(ctx context.Context, userID string, friendIDs []string)
	Invalidate(ctx context.Context, userID string)
}

type redisFriendCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisFriendCache(client *redis.Client, ttl time.Duration) FriendCache {
	return &redisFriendCache{client: client, ttl: ttl}
}

func friendKey(userID string) string {
	return fmt.Sprintf("social:friends:%s", userID)
}

func (c *redisFriendCache) Get(ctx context.Context, userID string) ([]string, bool) {
	members, err := c.client.SMembers(ctx, friendKey(userID)).Result()
	if err != nil {
		slog.Warn("friend cache read failed", "userID", userID, "error", err)
		return nil, false
	}
	// The cached circle always contains the user's own id, so an empty set
	// means a miss, never an empty circle.
	if len(members) == 0 {
		return nil, false
	}
	return members, true
}

func (c *redisFriendCache) Set(ctx context.Context, userID string, friendIDs []string) {
	if len(friendIDs) == 0 {
		return
	}
	key := friendKey(userID)
	pipe := c.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SAdd(ctx, key, toAnySlice(friendIDs)...)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("friend cache write failed", "userID", userID, "error", err)
	}
}

func (c *redisFriendCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, friendKey(userID)).Err(); err != nil {
		slog.Warn("friend cache invalidation failed", "userID", userID, "error", err)
	}
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
