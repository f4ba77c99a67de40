package session

import (
	"context"
	"log"
	"time"

	"github.com/wagateway/pkg/entities"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepo returns a StatusRecorder that mirrors phase transitions into the
// gateway_sessions table, one row per session id.
func NewRepo(db *gorm.DB) StatusRecorder {
	return &repository{db: db}
}

func (r *repository) RecordPhase(ctx context.Context, sessionID string, phase Phase) {
	var record entities.GatewaySession
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&record).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		record = entities.GatewaySession{
			SessionID:    sessionID,
			Phase:        phase.String(),
			LastActiveAt: time.Now(),
		}
		if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
			log.Printf("[error] failed to record session status: %v", err)
		}
	case err == nil:
		record.Phase = phase.String()
		record.LastActiveAt = time.Now()
		if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
			log.Printf("[error] failed to record session status: %v", err)
		}
	default:
		log.Printf("[error] failed to load session status: %v", err)
	}
}
