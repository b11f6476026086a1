package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 2 * time.Second

// RedisBlacklistStore keeps revoked token ids in Redis so every instance sees
// them. Keys expire together with the token.
type RedisBlacklistStore struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisBlacklistStore stores keys as prefix+jti
func NewRedisBlacklistStore(rdb redis.UniversalClient, prefix string) *RedisBlacklistStore {
	return &RedisBlacklistStore{rdb: rdb, prefix: prefix}
}

// IsBlacklisted implements JwtBlacklistStore
func (s *RedisBlacklistStore) IsBlacklisted(jti string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	err := s.rdb.Get(ctx, s.prefix+jti).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, err
	}
}

// AddToBlacklist implements JwtBlacklistStore. Already expired tokens are not stored.
func (s *RedisBlacklistStore) AddToBlacklist(jti string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return s.rdb.Set(ctx, s.prefix+jti, 1, ttl).Err()
}
