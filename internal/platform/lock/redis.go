package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock key only when it still holds our token, so a
// lock that expired and was re-acquired elsewhere is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a Locker for multi-instance deployments, backed by
// SET NX PX with a per-acquisition token. The TTL bounds how long a crashed
// holder can block other instances.
type RedisLocker struct {
	rdb       *redis.Client
	ttl       time.Duration
	retryWait time.Duration
	prefix    string
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisLocker{
		rdb:       rdb,
		ttl:       ttl,
		retryWait: 25 * time.Millisecond,
		prefix:    "booking_lock",
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	fullKey := l.prefix + ":" + key
	token := uuid.New().String()

	for {
		ok, err := l.rdb.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			release := func() {
				rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseScript.Run(rctx, l.rdb, []string{fullKey}, token).Err()
			}
			return release, nil
		}

		select {
		case <-time.After(l.retryWait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
