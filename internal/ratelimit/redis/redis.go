// Package redis is implementation of ratelimit interface backed by a redis
// sliding window.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/emotter/emotter/internal/ratelimit"
)

// slidingWindow trims, counts and conditionally adds in one atomic step so
// concurrent calls for the same key can not all observe the pre-add count.
// Scores are unix milliseconds, members carry a unique suffix so events
// landing on the same millisecond are counted individually.
var slidingWindow = redis.NewScript(`
redis.call("ZREMRANGEBYSCORE", KEYS[1], 0, ARGV[1])
if tonumber(redis.call("ZCARD", KEYS[1])) >= tonumber(ARGV[2]) then
	return 0
end
redis.call("ZADD", KEYS[1], ARGV[3], ARGV[4])
redis.call("PEXPIRE", KEYS[1], ARGV[5])
return 1
`)

type limiter struct {
	client *redis.Client
	limit  int64
	window time.Duration

	now func() time.Time
}

// New creates new instance of limiter allowing limit events per window per key.
func New(client *redis.Client, limit int64, window time.Duration) ratelimit.Limiter {
	return &limiter{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *limiter) Allow(ctx context.Context, key string) (bool, error) {
	now := l.now()

	res, err := slidingWindow.Run(ctx, l.client,
		[]string{fmt.Sprintf("ratelimit:%s", key)},
		now.Add(-l.window).UnixMilli(),
		l.limit,
		now.UnixMilli(),
		fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()),
		l.window.Milliseconds(),
	).Int64()

	if err != nil {
		return false, fmt.Errorf("failed to run limiter script: %w", err)
	}

	return res == 1, nil
}
