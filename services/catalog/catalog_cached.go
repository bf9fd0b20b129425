package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MarcGrol/storefront/lib/mycache"
	"github.com/MarcGrol/storefront/lib/mylog"
)

const (
	DefaultCacheTTL = 5 * time.Minute
	listCacheKey    = "catalog:products"
)

// cachedCatalog is a read-through cache in front of another Reader. Cache failures are
// logged and the underlying reader is used instead. Unknown products are not cached.
type cachedCatalog struct {
	reader Reader
	cache  mycache.Cache
	ttl    time.Duration
	logger mylog.Logger
}

func NewCachedCatalog(reader Reader, cache mycache.Cache, ttl time.Duration) *cachedCatalog {
	return &cachedCatalog{
		reader: reader,
		cache:  cache,
		ttl:    ttl,
		logger: mylog.New("catalog"),
	}
}

func productCacheKey(productID int) string {
	return fmt.Sprintf("catalog:product:%d", productID)
}

func (cc *cachedCatalog) Get(c context.Context, productID int) (Product, bool, error) {
	key := productCacheKey(productID)

	p := Product{}
	if cc.lookup(c, key, &p) {
		return p, true, nil
	}

	p, found, err := cc.reader.Get(c, productID)
	if err != nil || !found {
		return p, found, err
	}
	cc.store(c, key, p)

	return p, true, nil
}

func (cc *cachedCatalog) List(c context.Context) ([]Product, error) {
	products := []Product{}
	if cc.lookup(c, listCacheKey, &products) {
		return products, nil
	}

	products, err := cc.reader.List(c)
	if err != nil {
		return nil, err
	}
	cc.store(c, listCacheKey, products)

	return products, nil
}

func (cc *cachedCatalog) lookup(c context.Context, key string, dest any) bool {
	data, found, err := cc.cache.Get(c, key)
	if err != nil {
		cc.logger.Log(c, "", mylog.SeverityWarn, "Error reading cache entry %s: %s", key, err)
		return false
	}
	if !found {
		return false
	}
	err = json.Unmarshal(data, dest)
	if err != nil {
		cc.logger.Log(c, "", mylog.SeverityWarn, "Error decoding cache entry %s: %s", key, err)
		return false
	}
	return true
}

func (cc *cachedCatalog) store(c context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		cc.logger.Log(c, "", mylog.SeverityWarn, "Error encoding cache entry %s: %s", key, err)
		return
	}
	err = cc.cache.Set(c, key, data, cc.ttl)
	if err != nil {
		cc.logger.Log(c, "", mylog.SeverityWarn, "Error writing cache entry %s: %s", key, err)
	}
}
