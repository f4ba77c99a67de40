package messages

import (
	"context"
	"errors"

	"github.com/wagateway/pkg/constant"
	"github.com/wagateway/pkg/entities"
)

type Service interface {
	ListSent(ctx context.Context, page int) ([]entities.SentMessage, int, error)
	ListReceived(ctx context.Context, page int) ([]entities.ReceivedMessage, int, error)
	UpdateSent(ctx context.Context, id uint, body string) error
	UpdateReceived(ctx context.Context, id uint, body string) error
	DeleteSent(ctx context.Context, id uint) error
	DeleteReceived(ctx context.Context, id uint) error
}

type service struct {
	repository Repository
}

func NewService(r Repository) Service {
	return &service{
		repository: r,
	}
}

func (s *service) ListSent(ctx context.Context, page int) ([]entities.SentMessage, int, error) {
	if page <= 0 {
		return nil, 0, errors.New(constant.INVALID_PAGE_NUMBER)
	}
	return s.repository.ListSent(ctx, page)
}

func (s *service) ListReceived(ctx context.Context, page int) ([]entities.ReceivedMessage, int, error) {
	if page <= 0 {
		return nil, 0, errors.New(constant.INVALID_PAGE_NUMBER)
	}
	return s.repository.ListReceived(ctx, page)
}

func (s *service) UpdateSent(ctx context.Context, id uint, body string) error {
	return s.repository.UpdateSent(ctx, id, body)
}

func (s *service) UpdateReceived(ctx context.Context, id uint, body string) error {
	return s.repository.UpdateReceived(ctx, id, body)
}

func (s *service) DeleteSent(ctx context.Context, id uint) error {
	return s.repository.DeleteSent(ctx, id)
}

func (s *service) DeleteReceived(ctx context.Context, id uint) error {
	return s.repository.DeleteReceived(ctx, id)
}
