// Package redis contains Redis repository implementations
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	lockKeyPrefix = "shop:lock:user:"
	retryInterval = 25 * time.Millisecond
)

// releaseScript deletes the lock only if it still holds our token
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker implements deps.UserLocker with SET NX PX
type Locker struct {
	client *goredis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewLocker creates a new Redis backed user locker
func NewLocker(client *goredis.Client, ttl time.Duration, logger zerolog.Logger) *Locker {
	return &Locker{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Lock blocks until the user's lock is held or ctx is done
func (l *Locker) Lock(ctx context.Context, userID int64) (func(), error) {
	key := fmt.Sprintf("%s%d", lockKeyPrefix, userID)
	token := uuid.NewString()

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock for user %d: %w", userID, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to acquire lock for user %d: %w", userID, ctx.Err())
		case <-ticker.C:
		}
	}

	return func() {
		// The update context may already be cancelled when the handler returns
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
			l.logger.Warn().Err(err).Int64("user_id", userID).Msg("Failed to release user lock")
		}
	}, nil
}
