package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

const lockReleaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

// SweepLocker makes a sweep trigger single-shot across replicas: the first
// instance to SetNX the (sweep, month) key runs, the rest skip. Release only
// deletes the key when the caller still holds its token.
type SweepLocker struct {
	client *redis.Client
	script *redis.Script
}

func NewSweepLocker(client *redis.Client) *SweepLocker {
	if client == nil {
		return nil
	}
	return &SweepLocker{
		client: client,
		script: redis.NewScript(lockReleaseScript),
	}
}

func (l *SweepLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if l == nil || l.client == nil {
		return "", false, errors.New("lock client not configured")
	}
	if key == "" {
		return "", false, errors.New("lock key is empty")
	}
	if ttl <= 0 {
		return "", false, errors.New("lock ttl must be positive")
	}

	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

func (l *SweepLocker) Release(ctx context.Context, key, token string) error {
	if l == nil || l.client == nil {
		return nil
	}
	if key == "" || token == "" {
		return nil
	}
	return l.script.Run(ctx, l.client, []string{key}, token).Err()
}
