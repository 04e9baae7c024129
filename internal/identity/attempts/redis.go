package attempts

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// The counter expiry is refreshed only while attempts are let through,
// so the lockout runs from the last allowed attempt.
var attemptScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current <= tonumber(ARGV[2]) then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

var releaseScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
if current <= 1 then
  redis.call("DEL", KEYS[1])
  return 0
end
return redis.call("DECR", KEYS[1])
`)

// RedisLimiter limiter shared between service instances
type RedisLimiter struct {
	rdb    redis.Cmdable
	cfg    Config
	prefix string
}

// NewRedisLimiter rdb is usually *redis.Client
func NewRedisLimiter(rdb redis.Cmdable, cfg Config, prefix string) *RedisLimiter {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "attempts"
	}
	return &RedisLimiter{rdb: rdb, cfg: cfg.withDefaults(), prefix: prefix}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := attemptScript.Run(ctx, l.rdb, []string{l.key(key)},
		l.cfg.Lockout.Milliseconds(), l.cfg.MaxAttempts).Int64()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return count <= int64(l.cfg.MaxAttempts), nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.rdb.Del(ctx, l.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}

func (l *RedisLimiter) Release(ctx context.Context, key string) error {
	if err := releaseScript.Run(ctx, l.rdb, []string{l.key(key)}).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}

func (l *RedisLimiter) key(key string) string {
	return l.prefix + ":" + key
}
