package autoreply

import (
	"context"
	"testing"

	"github.com/wagateway/pkg/dtos"
	"github.com/wagateway/pkg/entities"
)

type memRepo struct {
	rules  map[uint]*entities.AutoReply
	nextID uint
}

func newMemRepo() *memRepo {
	return &memRepo{rules: make(map[uint]*entities.AutoReply), nextID: 1}
}

func (m *memRepo) Create(ctx context.Context, rule *entities.AutoReply) error {
	rule.ID = m.nextID
	m.nextID++
	m.rules[rule.ID] = rule
	return nil
}

func (m *memRepo) List(ctx context.Context) ([]entities.AutoReply, error) {
	var out []entities.AutoReply
	for _, r := range m.rules {
		out = append(out, *r)
	}
	return out, nil
}

func (m *memRepo) Update(ctx context.Context, rule *entities.AutoReply) error {
	m.rules[rule.ID] = rule
	return nil
}

func (m *memRepo) Delete(ctx context.Context, id uint) error {
	delete(m.rules, id)
	return nil
}

func (m *memRepo) FindByID(ctx context.Context, id uint) (*entities.AutoReply, error) {
	rule, ok := m.rules[id]
	if !ok {
		return nil, nil
	}
	copied := *rule
	return &copied, nil
}

func (m *memRepo) FindByKeyword(ctx context.Context, keyword string) (*entities.AutoReply, error) {
	for _, r := range m.rules {
		if r.Keyword == keyword {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes the keyword", func(t *testing.T) {
		s := NewService(newMemRepo())

		rule, err := s.Create(ctx, dtos.AutoReplyDTO{Keyword: "  Hai ", Reply: "Halo"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if rule.Keyword != "hai" {
			t.Errorf("expected keyword stored lowercased and trimmed, got %q", rule.Keyword)
		}
	})

	t.Run("rejects duplicate keywords", func(t *testing.T) {
		s := NewService(newMemRepo())

		if _, err := s.Create(ctx, dtos.AutoReplyDTO{Keyword: "hai", Reply: "Halo"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := s.Create(ctx, dtos.AutoReplyDTO{Keyword: "HAI", Reply: "other"}); err == nil {
			t.Error("expected duplicate keyword to be rejected")
		}
	})

	t.Run("rejects blank keywords", func(t *testing.T) {
		s := NewService(newMemRepo())

		if _, err := s.Create(ctx, dtos.AutoReplyDTO{Keyword: "   ", Reply: "Halo"}); err == nil {
			t.Error("expected blank keyword to be rejected")
		}
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	s := NewService(repo)

	first, err := s.Create(ctx, dtos.AutoReplyDTO{Keyword: "hai", Reply: "Halo"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := s.Create(ctx, dtos.AutoReplyDTO{Keyword: "help", Reply: "How can we help?"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("updates keyword and reply", func(t *testing.T) {
		updated, err := s.Update(ctx, first.ID, dtos.AutoReplyDTO{Keyword: "Hello", Reply: "Hi!"})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Keyword != "hello" || updated.Reply != "Hi!" {
			t.Errorf("unexpected rule after update: %+v", updated)
		}
	})

	t.Run("rejects taking another rule's keyword", func(t *testing.T) {
		if _, err := s.Update(ctx, second.ID, dtos.AutoReplyDTO{Keyword: "hello", Reply: "x"}); err == nil {
			t.Error("expected keyword collision to be rejected")
		}
	})

	t.Run("unknown id fails", func(t *testing.T) {
		if _, err := s.Update(ctx, 9999, dtos.AutoReplyDTO{Keyword: "new", Reply: "x"}); err == nil {
			t.Error("expected unknown id to fail")
		}
	})
}
