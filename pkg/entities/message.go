package entities

import (
	"time"

	"gorm.io/gorm"
)

// SentMessage is one message the transport actually accepted. Rows are only
// created after a successful send, never for attempts.
type SentMessage struct {
	gorm.Model
	To        string    `json:"to" gorm:"type:varchar(255);not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}

// ReceivedMessage is one inbound message with non-empty text.
type ReceivedMessage struct {
	gorm.Model
	From      string    `json:"from" gorm:"type:varchar(255);not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}
