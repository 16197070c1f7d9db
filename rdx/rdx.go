package rdx

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Redis client for read-through caching of hot listings.
// All methods tolerate a nil receiver or a missing client: reads miss and
// writes are dropped, so the server runs without Redis.
type Cache struct {
	client *redis.Client
}

// Connect dials Redis. An empty addr disables caching.
func Connect(addr string) *Cache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable at %s, caching disabled: %v", addr, err)
		return nil
	}
	return &Cache{client: client}
}

// Client exposes the underlying connection for pub/sub.
func (c *Cache) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}

func (c *Cache) Get(ctx context.Context, key string) string {
	if c == nil || c.client == nil {
		return ""
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return val
}

func (c *Cache) Set(ctx context.Context, key, val string, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, val, ttl).Err(); err != nil {
		log.Printf("cache set %s failed: %v", key, err)
	}
}

func (c *Cache) Del(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache del %v failed: %v", keys, err)
	}
}
