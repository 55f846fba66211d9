package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/surershelf/task-manager-api/pkg/helpers"
)

// TokenStore marks one-time token ids as used until they would expire anyway.
type TokenStore struct {
	rdb redis.Cmdable
}

func NewTokenStore(rdb redis.Cmdable) *TokenStore {
	return &TokenStore{rdb: rdb}
}

func (s *TokenStore) Consume(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	return helpers.RedisSetOnce(ctx, s.rdb, helpers.KeyResetTokenUsed(id), ttl)
}
