package cache

import (
	"context"
	"fmt"

	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// redisStore keeps detection results in redis so multiple instances share
// one cache.
type redisStore struct {
	client *redis.Client
	config *config.CacheConfig
}

func newRedisStore(cfg *config.Config) (*redisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	common.LogInfo("cache initialized",
		zap.String("backend", "redis"),
		zap.String("addr", cfg.Cache.RedisAddr),
		zap.Duration("ttl", cfg.Cache.TTL),
	)

	return &redisStore{
		client: client,
		config: &cfg.Cache,
	}, nil
}

func (s *redisStore) key(key string) string {
	return "detect:result:" + key
}

// Get returns the cached value for key, or ErrCacheDisabled on a miss.
func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("detection", key)
			return "", common.ErrCacheDisabled
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}
	common.LogCacheHit("detection", key)
	return val, nil
}

// Set stores value under key with the configured TTL.
func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Stats reports redis pool counters.
func (s *redisStore) Stats() map[string]interface{} {
	poolStats := s.client.PoolStats()
	return map[string]interface{}{
		"backend":     "redis",
		"hits":        poolStats.Hits,
		"misses":      poolStats.Misses,
		"total_conns": poolStats.TotalConns,
		"idle_conns":  poolStats.IdleConns,
	}
}

// Close shuts down the redis connection.
func (s *redisStore) Close() error {
	return s.client.Close()
}
