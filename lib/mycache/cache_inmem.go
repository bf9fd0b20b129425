package mycache

import (
	"context"
	"sync"
	"time"

	"github.com/MarcGrol/storefront/lib/mytime"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

type inMemoryCache struct {
	sync.Mutex
	nower   mytime.Nower
	entries map[string]entry
}

func NewInMemoryCache(nower mytime.Nower) *inMemoryCache {
	return &inMemoryCache{
		nower:   nower,
		entries: map[string]entry{},
	}
}

func (mc *inMemoryCache) Get(c context.Context, key string) ([]byte, bool, error) {
	mc.Lock()
	defer mc.Unlock()

	e, found := mc.entries[key]
	if !found {
		return nil, false, nil
	}
	if !mc.nower.Now().Before(e.expiresAt) {
		delete(mc.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (mc *inMemoryCache) Set(c context.Context, key string, value []byte, ttl time.Duration) error {
	mc.Lock()
	defer mc.Unlock()

	mc.entries[key] = entry{
		value:     value,
		expiresAt: mc.nower.Now().Add(ttl),
	}
	return nil
}
