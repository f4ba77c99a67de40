package entities

import (
	"time"

	"gorm.io/gorm"
)

// GatewaySession mirrors the in-memory session phase so the connection history
// survives restarts. One row per session id.
type GatewaySession struct {
	gorm.Model
	SessionID    string    `json:"session_id" gorm:"type:varchar(64);uniqueIndex;not null"`
	Phase        string    `json:"phase" gorm:"type:varchar(20);not null"`
	LastActiveAt time.Time `json:"last_active_at"`
}
