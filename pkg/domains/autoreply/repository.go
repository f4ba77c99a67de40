package autoreply

import (
	"context"

	"github.com/wagateway/pkg/entities"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, rule *entities.AutoReply) error
	List(ctx context.Context) ([]entities.AutoReply, error)
	Update(ctx context.Context, rule *entities.AutoReply) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entities.AutoReply, error)
	FindByKeyword(ctx context.Context, keyword string) (*entities.AutoReply, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) Create(ctx context.Context, rule *entities.AutoReply) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) List(ctx context.Context) ([]entities.AutoReply, error) {
	var rules []entities.AutoReply
	err := r.db.WithContext(ctx).Order("id DESC").Find(&rules).Error
	return rules, err
}

func (r *repository) Update(ctx context.Context, rule *entities.AutoReply) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.AutoReply{}, id).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*entities.AutoReply, error) {
	var rule entities.AutoReply
	err := r.db.WithContext(ctx).First(&rule, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repository) FindByKeyword(ctx context.Context, keyword string) (*entities.AutoReply, error) {
	var rule entities.AutoReply
	err := r.db.WithContext(ctx).Where("keyword = ?", keyword).First(&rule).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}
