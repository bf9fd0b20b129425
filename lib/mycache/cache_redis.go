package mycache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type redisCache struct {
	client *redis.Client
}

// NewRedisCache accepts either a redis:// url or a plain host:port address.
func NewRedisCache(c context.Context, addr string) (*redisCache, func(), error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
			PoolSize:     10,
		}
	}

	client := redis.NewClient(opts)
	err = client.Ping(c).Err()
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("error connecting to redis at %s: %w", addr, err)
	}

	return &redisCache{client: client}, func() {
		client.Close()
	}, nil
}

func (rc *redisCache) Get(c context.Context, key string) ([]byte, bool, error) {
	value, err := rc.client.Get(c, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error reading %s from redis: %w", key, err)
	}
	return value, true, nil
}

func (rc *redisCache) Set(c context.Context, key string, value []byte, ttl time.Duration) error {
	err := rc.client.Set(c, key, value, ttl).Err()
	if err != nil {
		return fmt.Errorf("error writing %s to redis: %w", key, err)
	}
	return nil
}
