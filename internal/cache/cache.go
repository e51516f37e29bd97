// Package cache — кеш вычисляемых ответов (статистика дашборда).
package cache

import (
	"CycleKeeper/internal/config"
	"CycleKeeper/internal/metrics"
	"context"
	"time"

	"go.uber.org/zap"
)

// Provider — минимальный интерфейс кеша значений. Значения хранятся
// сериализованными, TTL обязателен и должен быть положительным.
type Provider interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// NewProvider выбирает реализацию кеша по конфигурации.
func NewProvider(cfg *config.Config, logger *zap.SugaredLogger) Provider {
	switch cfg.Cache {
	case metrics.CacheTypeRedis:
		return NewRedisCache(cfg, logger)
	default:
		return NewMemCache()
	}
}
