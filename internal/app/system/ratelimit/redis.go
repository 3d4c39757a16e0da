package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// incrScript counts a request and starts the window on the first hit.
var incrScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// RedisLimiter is a fixed-window counter shared by every instance that
// points at the same Redis. When Redis is unreachable it falls back to an
// in-process Limiter so requests keep flowing.
type RedisLimiter struct {
	rdb      *redis.Client
	prefix   string
	limit    int
	duration time.Duration
	fallback *Limiter
	log      *zap.Logger
}

// NewRedis returns a RedisLimiter. rdb may be nil, in which case only the
// in-process fallback is used.
func NewRedis(rdb *redis.Client, prefix string, limit int, duration time.Duration, log *zap.Logger) *RedisLimiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisLimiter{
		rdb:      rdb,
		prefix:   prefix,
		limit:    limit,
		duration: duration,
		fallback: New(limit, duration),
		log:      log,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.rdb == nil {
		return l.fallback.Allow(ctx, key)
	}
	n, err := incrScript.Run(ctx, l.rdb, []string{l.prefix + ":" + key}, l.duration.Milliseconds()).Int64()
	if err != nil {
		l.log.Warn("rate limit redis unavailable; using in-process window", zap.Error(err))
		return l.fallback.Allow(ctx, key)
	}
	return n <= int64(l.limit), nil
}

// Fallback exposes the in-process limiter so callers can Sweep it.
func (l *RedisLimiter) Fallback() *Limiter { return l.fallback }
