package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache é a abstração de cache em memória injetada nos serviços.
// A invalidação é feita exclusivamente por expiração de TTL; não há
// sinal externo de invalidação.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
}

type memoryCache struct {
	store *gocache.Cache
}

// NewMemory cria um cache em memória com TTL padrão e intervalo de limpeza.
func NewMemory(defaultTTL, cleanupInterval time.Duration) Cache {
	return &memoryCache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

func (c *memoryCache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

func (c *memoryCache) Set(key string, value any, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

func (c *memoryCache) Delete(key string) {
	c.store.Delete(key)
}
