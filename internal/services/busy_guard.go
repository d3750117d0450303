package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// BusyGuard is the per-session "processing" flag. Acquire fails with
// ErrAnalysisInProgress while another analysis holds the session and otherwise
// returns a token naming the holder. Release clears the flag only while that
// token still owns it, so a holder whose claim expired cannot free a newer one.
type BusyGuard interface {
	Acquire(ctx context.Context, sessionID string) (string, error)
	Release(ctx context.Context, sessionID, token string) error
	IsBusy(ctx context.Context, sessionID string) (bool, error)
}

func newHolderToken() string {
	return uuid.New().String()
}

type memoryBusyGuard struct {
	mu   sync.Mutex
	busy map[string]string
}

func NewMemoryBusyGuard() BusyGuard {
	return &memoryBusyGuard{
		busy: make(map[string]string),
	}
}

func (g *memoryBusyGuard) Acquire(_ context.Context, sessionID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.busy[sessionID]; ok {
		return "", ErrAnalysisInProgress
	}
	token := newHolderToken()
	g.busy[sessionID] = token
	return token, nil
}

func (g *memoryBusyGuard) Release(_ context.Context, sessionID, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.busy[sessionID] == token {
		delete(g.busy, sessionID)
	}
	return nil
}

func (g *memoryBusyGuard) IsBusy(_ context.Context, sessionID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.busy[sessionID]
	return ok, nil
}
