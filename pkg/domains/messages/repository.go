package messages

import (
	"context"
	"fmt"

	"github.com/wagateway/pkg/constant"
	"github.com/wagateway/pkg/entities"
	"github.com/wagateway/pkg/utils"
	"gorm.io/gorm"
)

type Repository interface {
	CreateSent(ctx context.Context, msg *entities.SentMessage) error
	CreateReceived(ctx context.Context, msg *entities.ReceivedMessage) error
	ListSent(ctx context.Context, page int) ([]entities.SentMessage, int, error)
	ListReceived(ctx context.Context, page int) ([]entities.ReceivedMessage, int, error)
	UpdateSent(ctx context.Context, id uint, body string) error
	UpdateReceived(ctx context.Context, id uint, body string) error
	DeleteSent(ctx context.Context, id uint) error
	DeleteReceived(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreateSent(ctx context.Context, msg *entities.SentMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *repository) CreateReceived(ctx context.Context, msg *entities.ReceivedMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *repository) ListSent(ctx context.Context, page int) ([]entities.SentMessage, int, error) {
	var items []entities.SentMessage
	totalPages, err := utils.Pagination(&items, page, r.db, ctx, "timestamp DESC", "1 = 1")
	if err != nil {
		return nil, 0, err
	}
	return items, totalPages, nil
}

func (r *repository) ListReceived(ctx context.Context, page int) ([]entities.ReceivedMessage, int, error) {
	var items []entities.ReceivedMessage
	totalPages, err := utils.Pagination(&items, page, r.db, ctx, "timestamp DESC", "1 = 1")
	if err != nil {
		return nil, 0, err
	}
	return items, totalPages, nil
}

func (r *repository) UpdateSent(ctx context.Context, id uint, body string) error {
	tx := r.db.WithContext(ctx).Model(&entities.SentMessage{}).Where("id = ?", id).Update("message", body)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf(constant.CANT_FIND, "Message")
	}
	return nil
}

func (r *repository) UpdateReceived(ctx context.Context, id uint, body string) error {
	tx := r.db.WithContext(ctx).Model(&entities.ReceivedMessage{}).Where("id = ?", id).Update("message", body)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf(constant.CANT_FIND, "Message")
	}
	return nil
}

func (r *repository) DeleteSent(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.SentMessage{}, id).Error
}

func (r *repository) DeleteReceived(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.ReceivedMessage{}, id).Error
}
