package rolecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/user"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "payroll:role:"

// Key is the Redis key holding userID's role.
func Key(userID string) string {
	return keyPrefix + userID
}

// RedisCache shares resolved roles between API instances. Expiry is left to Redis.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, userID string) (user.Role, bool, error) {
	val, err := c.client.Get(ctx, Key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cached role: %w", err)
	}
	return user.Role(val), true, nil
}

func (c *RedisCache) Set(ctx context.Context, userID string, role user.Role) error {
	if err := c.client.Set(ctx, Key(userID), string(role), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache role: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, Key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached role: %w", err)
	}
	return nil
}
