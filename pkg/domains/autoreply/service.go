package autoreply

import (
	"context"
	"fmt"
	"strings"

	"github.com/wagateway/pkg/constant"
	"github.com/wagateway/pkg/dtos"
	"github.com/wagateway/pkg/entities"
)

type Service interface {
	Create(ctx context.Context, req dtos.AutoReplyDTO) (*entities.AutoReply, error)
	List(ctx context.Context) ([]entities.AutoReply, error)
	Update(ctx context.Context, id uint, req dtos.AutoReplyDTO) (*entities.AutoReply, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repository Repository
}

func NewService(r Repository) Service {
	return &service{
		repository: r,
	}
}

// NormalizeKeyword lowercases and trims a keyword. The router applies the
// same normalization to inbound bodies, so lookups stay exact-match.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

func (s *service) Create(ctx context.Context, req dtos.AutoReplyDTO) (*entities.AutoReply, error) {
	keyword := NormalizeKeyword(req.Keyword)
	if keyword == "" {
		return nil, fmt.Errorf(constant.INVALID_REQUEST)
	}

	existing, err := s.repository.FindByKeyword(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf(constant.SOMETHING_WENT_WRONG)
	}
	if existing != nil {
		return nil, fmt.Errorf(constant.KEYWORD_ALREADY_EXISTS)
	}

	rule := &entities.AutoReply{Keyword: keyword, Reply: req.Reply}
	if err := s.repository.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) List(ctx context.Context) ([]entities.AutoReply, error) {
	return s.repository.List(ctx)
}

func (s *service) Update(ctx context.Context, id uint, req dtos.AutoReplyDTO) (*entities.AutoReply, error) {
	rule, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf(constant.SOMETHING_WENT_WRONG)
	}
	if rule == nil {
		return nil, fmt.Errorf(constant.CANT_FIND, "Auto reply")
	}

	keyword := NormalizeKeyword(req.Keyword)
	if keyword == "" {
		return nil, fmt.Errorf(constant.INVALID_REQUEST)
	}

	if keyword != rule.Keyword {
		existing, err := s.repository.FindByKeyword(ctx, keyword)
		if err != nil {
			return nil, fmt.Errorf(constant.SOMETHING_WENT_WRONG)
		}
		if existing != nil {
			return nil, fmt.Errorf(constant.KEYWORD_ALREADY_EXISTS)
		}
	}

	rule.Keyword = keyword
	rule.Reply = req.Reply
	if err := s.repository.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repository.Delete(ctx, id)
}
