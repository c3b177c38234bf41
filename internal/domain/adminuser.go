package domain

import (
	"context"
	"time"
)

// AdminUser is a recruiting-team account. There is a single admin role;
// every active account has full access to the admin surface.
type AdminUser struct {
	Email        string
	PasswordHash string // bcrypt, never returned in API responses
	CreatedAt    time.Time
	IsActive     bool
}

// AdminUserRepository defines data access for admin accounts
type AdminUserRepository interface {
	Create(ctx context.Context, user *AdminUser) error
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}
