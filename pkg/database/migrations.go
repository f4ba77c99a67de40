package database

import (
	"github.com/wagateway/pkg/entities"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.User{},
		&entities.Contact{},
		&entities.SentMessage{},
		&entities.ReceivedMessage{},
		&entities.AutoReply{},
		&entities.GatewaySession{},
	)
}
