package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
	"github.com/surershelf/task-manager-api/pkg/helpers"
)

// minGenTTL keeps a user's generation counter well past the life of any entry.
const minGenTTL = 24 * time.Hour

// StatsCache keeps completion statistics in redis under stats:user:<id>:<gen>.
// stats:gen:<id> holds the current generation; Invalidate increments it, so an
// entry computed before a write can be stored but is never served.
type StatsCache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	genTTL time.Duration
}

func NewStatsCache(rdb redis.Cmdable, ttl time.Duration) *StatsCache {
	genTTL := minGenTTL
	if 2*ttl > genTTL {
		genTTL = 2 * ttl
	}
	return &StatsCache{rdb: rdb, ttl: ttl, genTTL: genTTL}
}

func (c *StatsCache) generation(ctx context.Context, userID string) (int64, error) {
	gen, err := c.rdb.Get(ctx, helpers.KeyUserStatsGen(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *StatsCache) Get(ctx context.Context, userID string) (*entity.CompletionStats, int64, bool, error) {
	gen, err := c.generation(ctx, userID)
	if err != nil {
		return nil, 0, false, err
	}
	var s entity.CompletionStats
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, helpers.KeyUserStats(userID, gen), &s)
	if err != nil || !ok {
		return nil, gen, false, err
	}
	return &s, gen, true, nil
}

func (c *StatsCache) Set(ctx context.Context, userID string, gen int64, s *entity.CompletionStats) error {
	return helpers.RedisSetJSON(ctx, c.rdb, helpers.KeyUserStats(userID, gen), s, c.ttl)
}

func (c *StatsCache) Invalidate(ctx context.Context, userID string) error {
	key := helpers.KeyUserStatsGen(userID)
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, key)
		p.Expire(ctx, key, c.genTTL)
		return nil
	})
	return err
}
