package contacts

import (
	"context"
	"fmt"
	"strings"

	"github.com/wagateway/pkg/constant"
	"github.com/wagateway/pkg/dtos"
	"github.com/wagateway/pkg/entities"
	"github.com/wagateway/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, req dtos.ContactDTO) (*entities.Contact, error)
	List(ctx context.Context) ([]entities.Contact, error)
	Update(ctx context.Context, id uint, req dtos.ContactDTO) (*entities.Contact, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repository Repository
	validator  *utils.CustomValidator
}

func NewService(r Repository) Service {
	return &service{
		repository: r,
		validator:  utils.NewCustomValidator(),
	}
}

func (s *service) Create(ctx context.Context, req dtos.ContactDTO) (*entities.Contact, error) {
	number := strings.TrimSpace(req.Number)
	if err := s.validator.Validator.Var(number, "isphone"); err != nil {
		return nil, fmt.Errorf(constant.INVALID_PHONE_NUMBER)
	}

	existing, err := s.repository.FindByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf(constant.SOMETHING_WENT_WRONG)
	}
	if existing != nil {
		return nil, fmt.Errorf(constant.NUMBER_ALREADY_REGISTERED)
	}

	contact := &entities.Contact{Name: req.Name, Number: number}
	if err := s.repository.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *service) List(ctx context.Context) ([]entities.Contact, error) {
	return s.repository.List(ctx)
}

func (s *service) Update(ctx context.Context, id uint, req dtos.ContactDTO) (*entities.Contact, error) {
	contact, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf(constant.SOMETHING_WENT_WRONG)
	}
	if contact == nil {
		return nil, fmt.Errorf(constant.CANT_FIND, "Contact")
	}

	number := strings.TrimSpace(req.Number)
	if err := s.validator.Validator.Var(number, "isphone"); err != nil {
		return nil, fmt.Errorf(constant.INVALID_PHONE_NUMBER)
	}

	if number != contact.Number {
		existing, err := s.repository.FindByNumber(ctx, number)
		if err != nil {
			return nil, fmt.Errorf(constant.SOMETHING_WENT_WRONG)
		}
		if existing != nil {
			return nil, fmt.Errorf(constant.NUMBER_ALREADY_REGISTERED)
		}
	}

	contact.Name = req.Name
	contact.Number = number
	if err := s.repository.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	contact, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf(constant.SOMETHING_WENT_WRONG)
	}
	if contact == nil {
		return fmt.Errorf(constant.CANT_FIND, "Contact")
	}
	return s.repository.Delete(ctx, id)
}
