package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productCachePrefix = "products:v:"
	cacheVersionKey    = "products:version"
	defaultCacheTTL    = 5 * time.Minute
)

// ResponseCache caches rendered product responses in Redis behind a version
// counter: bumping the version on any product write orphans every cached
// page at once.
type ResponseCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewResponseCache(client *redis.Client) *ResponseCache {
	return &ResponseCache{
		redis: client,
		ttl:   defaultCacheTTL,
	}
}

// Get retrieves a cached response envelope by its key suffix.
func (rc *ResponseCache) Get(ctx context.Context, suffix string) (map[string]interface{}, bool) {
	if rc == nil || rc.redis == nil {
		return nil, false
	}

	version, err := rc.redis.Get(ctx, cacheVersionKey).Int64()
	if err != nil {
		return nil, false
	}

	data, err := rc.redis.Get(ctx, rc.key(version, suffix)).Result()
	if err != nil {
		return nil, false
	}

	var response map[string]interface{}
	if err := json.Unmarshal([]byte(data), &response); err != nil {
		zap.L().Warn("Failed to unmarshal cached response", zap.Error(err))
		return nil, false
	}
	return response, true
}

// SetAsync caches a response envelope without blocking the request.
func (rc *ResponseCache) SetAsync(suffix string, response map[string]interface{}) {
	if rc == nil || rc.redis == nil {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := rc.redis.Get(bgCtx, cacheVersionKey).Int64()
		if err == redis.Nil {
			if err := rc.redis.Set(bgCtx, cacheVersionKey, 1, 0).Err(); err != nil {
				return
			}
			version = 1
		} else if err != nil {
			return
		}

		data, err := json.Marshal(response)
		if err != nil {
			zap.L().Warn("Failed to marshal response for cache", zap.Error(err))
			return
		}

		if err := rc.redis.Set(bgCtx, rc.key(version, suffix), data, rc.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache response", zap.Error(err))
		}
	}()
}

// Invalidate bumps the cache version, orphaning all cached responses.
func (rc *ResponseCache) Invalidate(ctx context.Context) {
	if rc == nil || rc.redis == nil {
		return
	}
	if err := rc.redis.Incr(ctx, cacheVersionKey).Err(); err != nil {
		zap.L().Error("Failed to invalidate response cache", zap.Error(err))
	}
}

func (rc *ResponseCache) key(version int64, suffix string) string {
	return fmt.Sprintf("%s%d:%s", productCachePrefix, version, suffix)
}
