package mycache

import (
	"context"
	"time"
)

// Cache stores opaque values by key for a limited time.
type Cache interface {
	Get(c context.Context, key string) ([]byte, bool, error)
	Set(c context.Context, key string, value []byte, ttl time.Duration) error
}
