package models

import (
	"time"
)

// Session tracks whether a client session has an analysis in flight. Token
// names the current holder and is empty while the session is idle.
type Session struct {
	ID         string    `gorm:"type:text;primary_key" json:"id"`
	Processing bool      `gorm:"not null;default:false" json:"processing"`
	Token      string    `gorm:"type:text;not null;default:''" json:"-"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Session) TableName() string {
	return "sessions"
}
