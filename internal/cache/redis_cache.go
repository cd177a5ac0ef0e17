package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
}

const scanBatch = 100

type redisCache struct {
	client *redis.Client
	logger *zap.Logger
}

func (r redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}

	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		r.logger.Error("cache set failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to set cache key: %w", err)
	}

	r.logger.Debug("cache set", zap.String("key", key), zap.Duration("ttl", ttl), zap.Int("bytes", len(payload)))
	return nil
}

func (r redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	payload, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("cache miss", zap.String("key", key))
		return ErrCacheMiss
	}
	if err != nil {
		r.logger.Error("cache get failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to get cache key: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("failed to decode cache value: %w", err)
	}
	return nil
}

func (r redisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("cache delete failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to delete cache key: %w", err)
	}
	return nil
}

// DeletePattern walks the keyspace with SCAN so large databases are not blocked.
func (r redisCache) DeletePattern(ctx context.Context, pattern string) error {
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := r.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deleted += n
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	r.logger.Info("cache pattern deleted", zap.String("pattern", pattern), zap.Int64("deleted", deleted))
	return nil
}

func NewRedisCache(client *redis.Client, logger *zap.Logger) CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisCache{
		client: client,
		logger: logger,
	}
}
