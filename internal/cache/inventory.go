package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"criminaldiaries/internal/observability"
)

const (
	UserKeyPrefix  = "user:%d"
	StoryKeyPrefix = "story:%d"
	StatsKey       = "admin:stats"
)

const (
	UserTTL  = 5 * time.Minute
	StoryTTL = 30 * time.Minute
	StatsTTL = time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func StoryKey(storyID uint) string {
	return fmt.Sprintf(StoryKeyPrefix, storyID)
}

// Aside implements the cache-aside pattern: read through the cache, fall back
// to the loader on a miss, and populate the cache with the loaded value.
// Without a Redis client it degrades to calling the loader directly.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, load func() error) error {
	if client == nil {
		return load()
	}

	prefix := keyPrefix(key)
	if raw, err := client.Get(ctx, key).Bytes(); err == nil {
		if jsonErr := json.Unmarshal(raw, dest); jsonErr == nil {
			observability.CacheRequests.WithLabelValues(prefix, "hit").Inc()
			return nil
		}
		// Corrupt entry; drop it and reload.
		client.Del(ctx, key)
	}
	observability.CacheRequests.WithLabelValues(prefix, "miss").Inc()

	if err := load(); err != nil {
		return err
	}

	if raw, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, raw, ttl)
	}
	return nil
}

func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateStory(ctx context.Context, storyID uint) {
	Invalidate(ctx, StoryKey(storyID))
}

func InvalidateStats(ctx context.Context) {
	Invalidate(ctx, StatsKey)
}
