package contacts

import (
	"context"

	"github.com/wagateway/pkg/entities"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, contact *entities.Contact) error
	List(ctx context.Context) ([]entities.Contact, error)
	Update(ctx context.Context, contact *entities.Contact) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entities.Contact, error)
	FindByNumber(ctx context.Context, number string) (*entities.Contact, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) Create(ctx context.Context, contact *entities.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *repository) List(ctx context.Context) ([]entities.Contact, error) {
	var contacts []entities.Contact
	err := r.db.WithContext(ctx).Order("name ASC").Find(&contacts).Error
	return contacts, err
}

func (r *repository) Update(ctx context.Context, contact *entities.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.Contact{}, id).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*entities.Contact, error) {
	var contact entities.Contact
	err := r.db.WithContext(ctx).First(&contact, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *repository) FindByNumber(ctx context.Context, number string) (*entities.Contact, error) {
	var contact entities.Contact
	err := r.db.WithContext(ctx).Where("number = ?", number).First(&contact).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}
