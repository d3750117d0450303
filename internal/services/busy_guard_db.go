package services

import (
	"context"
	"errors"

	"alfredoptarigan/resume-analyzer/internal/repositories"
)

// dbBusyGuard stores the flag on the sessions table.
type dbBusyGuard struct {
	sessions repositories.SessionRepository
}

func NewDBBusyGuard(sessions repositories.SessionRepository) BusyGuard {
	return &dbBusyGuard{sessions: sessions}
}

func (g *dbBusyGuard) Acquire(ctx context.Context, sessionID string) (string, error) {
	token := newHolderToken()

	err := g.sessions.MarkProcessing(ctx, sessionID, token)
	if errors.Is(err, repositories.ErrSessionBusy) {
		return "", ErrAnalysisInProgress
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (g *dbBusyGuard) Release(ctx context.Context, sessionID, token string) error {
	return g.sessions.ClearProcessing(ctx, sessionID, token)
}

func (g *dbBusyGuard) IsBusy(ctx context.Context, sessionID string) (bool, error) {
	return g.sessions.IsProcessing(ctx, sessionID)
}
