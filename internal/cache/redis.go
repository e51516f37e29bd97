package cache

import (
	"CycleKeeper/internal/config"
	"CycleKeeper/internal/metrics"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache — кеш поверх Redis. Ошибки соединения логируются, для
// читателя выглядят как промах, поэтому сервис живёт и без Redis.
type RedisCache struct {
	client *redis.Client
	logger *zap.SugaredLogger
}

func NewRedisCache(cfg *config.Config, logger *zap.SugaredLogger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		MinIdleConns: 2,
	})
	return &RedisCache{client: client, logger: logger}
}

// Ping проверяет доступность Redis.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close закрывает соединения клиента.
func (c *RedisCache) Close() error { return c.client.Close() }

func (c *RedisCache) key(k string) string { return "cache:" + k }

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	start := time.Now()
	defer func() {
		metrics.CacheOperationDuration.
			WithLabelValues(metrics.CacheTypeRedis, metrics.CacheOperationTypeGet).
			Observe(time.Since(start).Seconds())
	}()

	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Errorw("redis GET failed", "key", key, "error", err)
		}
		metrics.CacheMisses.WithLabelValues(metrics.CacheTypeRedis).Inc()
		return nil, false
	}

	metrics.CacheHits.WithLabelValues(metrics.CacheTypeRedis).Inc()
	return data, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	start := time.Now()
	defer func() {
		metrics.CacheOperationDuration.
			WithLabelValues(metrics.CacheTypeRedis, metrics.CacheOperationTypeSet).
			Observe(time.Since(start).Seconds())
	}()

	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		c.logger.Errorw("redis SET failed", "key", key, "error", err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	start := time.Now()
	defer func() {
		metrics.CacheOperationDuration.
			WithLabelValues(metrics.CacheTypeRedis, metrics.CacheOperationTypeDelete).
			Observe(time.Since(start).Seconds())
	}()

	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		c.logger.Errorw("redis DEL failed", "key", key, "error", err)
	}
}
