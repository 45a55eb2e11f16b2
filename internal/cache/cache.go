package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin JSON cache over Redis. A nil *Cache (or one created with an
// empty URL) is valid and turns every operation into a no-op, so callers never
// have to branch on whether Redis is configured.
type Cache struct {
	client *redis.Client
}

// New connects to Redis using a redis:// URL. An empty URL disables caching.
func New(url string) *Cache {
	if url == "" {
		log.Println("Redis URL not found, skipping Redis connection")
		return &Cache{}
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("Invalid REDIS_URL, caching disabled: %v", err)
		return &Cache{}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable, caching disabled: %v", err)
		return &Cache{}
	}

	log.Println("Redis Connected")
	return &Cache{client: client}
}

// Get unmarshals the cached value for key into dest. Returns false on miss,
// disabled cache, or any error.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(data, dest) == nil
}

// Set stores value under key with a TTL. Errors are logged, not returned: the
// cache is best-effort.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("Redis Error: %v", err)
	}
}

// Delete removes keys, used for invalidation after admin writes.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Redis Error: %v", err)
	}
}
