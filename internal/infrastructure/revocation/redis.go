package revocation

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "auth:revoked:"

// RedisStore shares revocation state between instances. Each entry carries a
// TTL equal to the token's remaining life, so Redis evicts it the moment the
// token would stop validating on its own.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired; nothing to remember.
		return nil
	}
	return s.rdb.Set(ctx, redisKeyPrefix+digest(token), "1", ttl).Err()
}

func (s *RedisStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Exists(ctx, redisKeyPrefix+digest(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var _ Store = (*RedisStore)(nil)
