package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// ErrSessionBusy is returned by MarkProcessing when the flag is already set.
var ErrSessionBusy = errors.New("session is already processing")

type SessionRepository interface {
	MarkProcessing(ctx context.Context, id, token string) error
	ClearProcessing(ctx context.Context, id, token string) error
	IsProcessing(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*models.Session, error)
}

type sessionRepository struct {
	db         *gorm.DB
	staleAfter time.Duration
}

// NewSessionRepository returns a repository whose processing flag is treated
// as abandoned once it has not been touched for staleAfter. A zero staleAfter
// never reclaims.
func NewSessionRepository(db *gorm.DB, staleAfter time.Duration) SessionRepository {
	return &sessionRepository{
		db:         db,
		staleAfter: staleAfter,
	}
}

// MarkProcessing claims the session for token in a single conditional UPDATE,
// creating the row first if the session is new. A claim older than staleAfter
// is taken over.
func (r *sessionRepository) MarkProcessing(ctx context.Context, id, token string) error {
	db := r.db.WithContext(ctx)

	session := models.Session{ID: id}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	now := time.Now()
	query := db.Model(&models.Session{}).Where("id = ?", id)
	if r.staleAfter > 0 {
		query = query.Where("(processing = ? OR updated_at < ?)", false, now.Add(-r.staleAfter))
	} else {
		query = query.Where("processing = ?", false)
	}

	result := query.Updates(map[string]interface{}{
		"processing": true,
		"token":      token,
		"updated_at": now,
	})

	if result.Error != nil {
		return fmt.Errorf("failed to mark session processing: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrSessionBusy
	}

	return nil
}

// ClearProcessing releases the session only while token still holds it.
func (r *sessionRepository) ClearProcessing(ctx context.Context, id, token string) error {
	result := r.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ? AND token = ?", id, token).
		Updates(map[string]interface{}{
			"processing": false,
			"token":      "",
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to clear session processing: %w", result.Error)
	}

	return nil
}

// IsProcessing reports a live claim; unknown sessions and stale claims are idle.
func (r *sessionRepository) IsProcessing(ctx context.Context, id string) (bool, error) {
	session, err := r.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if !session.Processing {
		return false, nil
	}
	if r.staleAfter > 0 && time.Since(session.UpdatedAt) > r.staleAfter {
		return false, nil
	}
	return true, nil
}

func (r *sessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return &session, nil
}
