package cache

import (
	"CycleKeeper/internal/config"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMemCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemCache()

	_, ok := c.Get(ctx, "stats")
	assert.False(t, ok)

	c.Set(ctx, "stats", []byte(`{"n":1}`), time.Minute)
	got, ok := c.Get(ctx, "stats")
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"n":1}`), got)
	assert.Equal(t, 1, c.Size())

	c.Delete(ctx, "stats")
	_, ok = c.Get(ctx, "stats")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}

func TestMemCache_TTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemCache()

	c.Set(ctx, "k", []byte("v"), 10*time.Millisecond)
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
	// просроченная запись вытеснена при чтении
	assert.Equal(t, 0, c.Size())
}

func TestNewProvider(t *testing.T) {
	log := zap.NewNop().Sugar()

	p := NewProvider(&config.Config{Cache: "memory"}, log)
	_, ok := p.(*MemCache)
	assert.True(t, ok)

	// клиент go-redis подключается лениво, конструктор безопасен без сервера
	p = NewProvider(&config.Config{Cache: "redis", RedisAddr: "localhost:6379"}, log)
	_, ok = p.(*RedisCache)
	assert.True(t, ok)
}
