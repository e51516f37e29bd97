package cache

import (
	"CycleKeeper/internal/metrics"
	"context"
	"sync"
	"time"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// MemCache — потокобезопасный кеш в памяти процесса. Просроченные
// записи вытесняются лениво, при чтении.
type MemCache struct {
	mu    sync.RWMutex
	items map[string]entry
}

func NewMemCache() *MemCache {
	return &MemCache{items: make(map[string]entry)}
}

func (c *MemCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		if ok {
			c.mu.Lock()
			delete(c.items, key)
			c.mu.Unlock()
		}
		metrics.CacheMisses.WithLabelValues(metrics.CacheTypeMemory).Inc()
		return nil, false
	}

	metrics.CacheHits.WithLabelValues(metrics.CacheTypeMemory).Inc()
	return e.data, true
}

func (c *MemCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{data: value, expiresAt: time.Now().Add(ttl)}
}

func (c *MemCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Size возвращает текущее число записей, включая просроченные.
func (c *MemCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
