package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pazorg/candidatetrack/internal/domain"
)

type memAdminUserRepo struct {
	byEmail map[string]*domain.AdminUser
}

func newMemAdminUserRepo() *memAdminUserRepo {
	return &memAdminUserRepo{byEmail: map[string]*domain.AdminUser{}}
}

func (m *memAdminUserRepo) Create(ctx context.Context, u *domain.AdminUser) error {
	u.CreatedAt = time.Now()
	m.byEmail[u.Email] = u
	return nil
}

func (m *memAdminUserRepo) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	if u, ok := m.byEmail[email]; ok && u.IsActive {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memAdminUserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	u, ok := m.byEmail[email]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func TestCreateAdminAndLogin(t *testing.T) {
	repo := newMemAdminUserRepo()
	s := NewAuthService(repo, "secret", nil)
	ctx := context.Background()

	if err := s.CreateAdmin(ctx, "Alice@Example.com", "Password123"); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	if _, ok := repo.byEmail["alice@example.com"]; !ok {
		t.Fatal("admin email not normalized on create")
	}

	// duplicate email
	if err := s.CreateAdmin(ctx, "alice@example.com", "Password456"); !domain.IsValidation(err) {
		t.Fatalf("duplicate email: got %v, want validation error", err)
	}
	// short password
	if err := s.CreateAdmin(ctx, "other@example.com", "short"); !domain.IsValidation(err) {
		t.Fatalf("short password: got %v, want validation error", err)
	}

	lr, err := s.Login(ctx, "ALICE@example.com ", "Password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if lr.Token == "" || lr.TokenType != "Bearer" {
		t.Fatalf("unexpected login result: %+v", lr)
	}

	if _, err := s.Login(ctx, "alice@example.com", "Wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := s.Login(ctx, "nobody@example.com", "Password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestVerifyToken(t *testing.T) {
	repo := newMemAdminUserRepo()
	s := NewAuthService(repo, "secret", nil)
	ctx := context.Background()

	if err := s.CreateAdmin(ctx, "alice@example.com", "Password123"); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	lr, err := s.Login(ctx, "alice@example.com", "Password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := s.VerifyToken(lr.Token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.Email != "alice@example.com" || claims.Role != "admin" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	// token signed with a different key must be rejected
	other := NewAuthService(repo, "other-secret", nil)
	if _, err := other.VerifyToken(lr.Token); err == nil {
		t.Error("token verified with wrong key")
	}
}

func TestChangePassword(t *testing.T) {
	repo := newMemAdminUserRepo()
	s := NewAuthService(repo, "secret", nil)
	ctx := context.Background()

	if err := s.CreateAdmin(ctx, "bob@example.com", "OldPass123"); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	if err := s.ChangePassword(ctx, "bob@example.com", "bad", "NewPass123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong old password: got %v", err)
	}
	if err := s.ChangePassword(ctx, "bob@example.com", "OldPass123", "NewPass123"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := s.Login(ctx, "bob@example.com", "OldPass123"); err == nil {
		t.Fatal("old password still works after change")
	}
	if _, err := s.Login(ctx, "bob@example.com", "NewPass123"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
