package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const busyKeyPrefix = "resume-analyzer:busy:"

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisBusyGuard keeps the flag as a key with a TTL so a crashed process cannot
// leave a session stuck in the busy state.
type redisBusyGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBusyGuard(client *redis.Client, ttl time.Duration) BusyGuard {
	return &redisBusyGuard{
		client: client,
		ttl:    ttl,
	}
}

func (g *redisBusyGuard) Acquire(ctx context.Context, sessionID string) (string, error) {
	token := newHolderToken()

	ok, err := g.client.SetNX(ctx, busyKeyPrefix+sessionID, token, g.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("failed to acquire session %s: %w", sessionID, err)
	}
	if !ok {
		return "", ErrAnalysisInProgress
	}
	return token, nil
}

func (g *redisBusyGuard) Release(ctx context.Context, sessionID, token string) error {
	if err := releaseScript.Run(ctx, g.client, []string{busyKeyPrefix + sessionID}, token).Err(); err != nil {
		return fmt.Errorf("failed to release session %s: %w", sessionID, err)
	}
	return nil
}

func (g *redisBusyGuard) IsBusy(ctx context.Context, sessionID string) (bool, error) {
	n, err := g.client.Exists(ctx, busyKeyPrefix+sessionID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to read session %s: %w", sessionID, err)
	}
	return n > 0, nil
}
