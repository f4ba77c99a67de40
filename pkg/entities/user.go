package entities

import (
	"time"

	"gorm.io/gorm"
)

// User is an operator account for the web control plane.
type User struct {
	gorm.Model
	Email          string    `json:"email" gorm:"unique;not null"`
	Password       string    `json:"password" gorm:"not null"`
	Name           string    `json:"name" gorm:"type:varchar(255);not null"`
	ResetToken     string    `json:"reset_token" gorm:"type:varchar(255)"`
	ResetExpiresAt time.Time `json:"reset_expires_at"`
}
