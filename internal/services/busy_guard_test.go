package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisGuard(t *testing.T, ttl time.Duration) (BusyGuard, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisBusyGuard(client, ttl), mr
}

func requireBusy(t *testing.T, guard BusyGuard, sessionID string, want bool) {
	t.Helper()

	busy, err := guard.IsBusy(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, want, busy, "session %s busy", sessionID)
}

func TestBusyGuards(t *testing.T) {
	guards := map[string]func(t *testing.T) BusyGuard{
		"memory": func(t *testing.T) BusyGuard { return NewMemoryBusyGuard() },
		"redis": func(t *testing.T) BusyGuard {
			guard, _ := newRedisGuard(t, time.Minute)
			return guard
		},
	}

	for name, newGuard := range guards {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			guard := newGuard(t)

			requireBusy(t, guard, "s1", false)

			token, err := guard.Acquire(ctx, "s1")
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			requireBusy(t, guard, "s1", true)

			_, err = guard.Acquire(ctx, "s1")
			assert.ErrorIs(t, err, ErrAnalysisInProgress)

			other, err := guard.Acquire(ctx, "s2")
			require.NoError(t, err, "sessions are independent")
			assert.NotEqual(t, token, other)

			require.NoError(t, guard.Release(ctx, "s1", "not-the-holder"))
			requireBusy(t, guard, "s1", true)

			require.NoError(t, guard.Release(ctx, "s1", token))
			requireBusy(t, guard, "s1", false)

			_, err = guard.Acquire(ctx, "s1")
			require.NoError(t, err)
			require.NoError(t, guard.Release(ctx, "unknown", token))
		})
	}
}

func TestMemoryBusyGuardSingleWinner(t *testing.T) {
	guard := NewMemoryBusyGuard()
	ctx := context.Background()

	const workers = 32
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		acquired int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := guard.Acquire(ctx, "shared"); err == nil {
				mu.Lock()
				acquired++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, acquired)
}

func TestRedisBusyGuardExpires(t *testing.T) {
	guard, mr := newRedisGuard(t, 30*time.Second)
	ctx := context.Background()

	_, err := guard.Acquire(ctx, "stale")
	require.NoError(t, err)
	assert.True(t, mr.Exists(busyKeyPrefix+"stale"))

	mr.FastForward(31 * time.Second)

	requireBusy(t, guard, "stale", false)
	_, err = guard.Acquire(ctx, "stale")
	require.NoError(t, err)
}

func TestRedisBusyGuardExpiredHolderCannotReleaseSuccessor(t *testing.T) {
	guard, mr := newRedisGuard(t, 30*time.Second)
	ctx := context.Background()

	first, err := guard.Acquire(ctx, "s1")
	require.NoError(t, err)

	mr.FastForward(31 * time.Second)

	second, err := guard.Acquire(ctx, "s1")
	require.NoError(t, err)

	// The first holder finishes late and runs its deferred release.
	require.NoError(t, guard.Release(ctx, "s1", first))
	requireBusy(t, guard, "s1", true)

	_, err = guard.Acquire(ctx, "s1")
	assert.ErrorIs(t, err, ErrAnalysisInProgress)

	require.NoError(t, guard.Release(ctx, "s1", second))
	requireBusy(t, guard, "s1", false)
}

func TestRedisBusyGuardUnavailable(t *testing.T) {
	guard, mr := newRedisGuard(t, time.Minute)
	mr.Close()

	_, err := guard.Acquire(context.Background(), "s1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAnalysisInProgress)
}
