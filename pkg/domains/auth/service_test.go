package auth

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/wagateway/pkg/entities"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type memUserRepo struct {
	users map[string]entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]entities.User{}}
}

func (m *memUserRepo) CreateUser(ctx context.Context, user *entities.User) error {
	user.ID = uint(len(m.users) + 1)
	m.users[user.Email] = *user
	return nil
}

func (m *memUserRepo) FindUserByEmail(ctx context.Context, email string) (entities.User, error) {
	user, ok := m.users[email]
	if !ok {
		return entities.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memUserRepo) FindUserByResetToken(ctx context.Context, token string) (entities.User, error) {
	for _, user := range m.users {
		if token != "" && user.ResetToken == token {
			return user, nil
		}
	}
	return entities.User{}, gorm.ErrRecordNotFound
}

func (m *memUserRepo) UpdateUser(ctx context.Context, user entities.User) error {
	m.users[user.Email] = user
	return nil
}

func TestGenerateResetToken(t *testing.T) {
	first, err := generateResetToken()
	if err != nil {
		t.Fatalf("generateResetToken failed: %v", err)
	}
	if len(first) != 32 {
		t.Fatalf("expected 32 hex chars, got %q", first)
	}
	if _, err := hex.DecodeString(first); err != nil {
		t.Errorf("token is not valid hex: %q", first)
	}

	second, err := generateResetToken()
	if err != nil {
		t.Fatalf("generateResetToken failed: %v", err)
	}
	if first == second {
		t.Error("expected a fresh token per call")
	}
}

func TestService_ForgotPassword(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	repo.users["op@example.com"] = entities.User{Email: "op@example.com", Password: "hash", Name: "Op"}
	s := NewService(repo)

	t.Run("issues a token with an expiry", func(t *testing.T) {
		if err := s.ForgotPassword(ctx, "op@example.com"); err != nil {
			t.Fatalf("ForgotPassword failed: %v", err)
		}

		user := repo.users["op@example.com"]
		if len(user.ResetToken) != 32 {
			t.Errorf("expected a 32 hex char reset token, got %q", user.ResetToken)
		}
		if !user.ResetExpiresAt.After(time.Now()) {
			t.Errorf("expected a future expiry, got %v", user.ResetExpiresAt)
		}
	})

	t.Run("unknown email fails", func(t *testing.T) {
		if err := s.ForgotPassword(ctx, "nobody@example.com"); err == nil {
			t.Fatal("expected an error for an unknown email")
		}
	})
}

func TestService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token replaces the password", func(t *testing.T) {
		repo := newMemUserRepo()
		repo.users["op@example.com"] = entities.User{
			Email:          "op@example.com",
			Password:       "old-hash",
			ResetToken:     "valid-token",
			ResetExpiresAt: time.Now().Add(time.Hour),
		}
		s := NewService(repo)

		if err := s.ResetPassword(ctx, "valid-token", "newpassword"); err != nil {
			t.Fatalf("ResetPassword failed: %v", err)
		}

		user := repo.users["op@example.com"]
		if user.ResetToken != "" {
			t.Errorf("expected reset token cleared, got %q", user.ResetToken)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpassword")); err != nil {
			t.Errorf("new password does not verify: %v", err)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		repo := newMemUserRepo()
		repo.users["op@example.com"] = entities.User{
			Email:          "op@example.com",
			Password:       "old-hash",
			ResetToken:     "stale-token",
			ResetExpiresAt: time.Now().Add(-time.Minute),
		}
		s := NewService(repo)

		if err := s.ResetPassword(ctx, "stale-token", "newpassword"); err == nil {
			t.Fatal("expected an error for an expired token")
		}
		if got := repo.users["op@example.com"].Password; got != "old-hash" {
			t.Errorf("password must not change on an expired token, got %q", got)
		}
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		s := NewService(newMemUserRepo())
		if err := s.ResetPassword(ctx, "no-such-token", "newpassword"); err == nil {
			t.Fatal("expected an error for an unknown token")
		}
	})
}
