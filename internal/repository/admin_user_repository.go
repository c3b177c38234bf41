package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pazorg/candidatetrack/internal/domain"
)

// PostgresAdminUserRepository implements domain.AdminUserRepository using
// PostgreSQL
type PostgresAdminUserRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresAdminUserRepository creates a new admin user repository
func NewPostgresAdminUserRepository(db *sql.DB, logger *slog.Logger) *PostgresAdminUserRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAdminUserRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new admin account
func (r *PostgresAdminUserRepository) Create(ctx context.Context, user *domain.AdminUser) error {
	query := `
		INSERT INTO admin_users (email, password_hash, is_active)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.IsActive,
	).Scan(&user.CreatedAt)

	if err != nil {
		r.logger.Error("failed to create admin user",
			slog.String("email", user.Email),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	return nil
}

// GetByEmail retrieves an active admin account by email
func (r *PostgresAdminUserRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	user := &domain.AdminUser{}

	query := `
		SELECT email, password_hash, created_at, is_active
		FROM admin_users
		WHERE email = $1 AND is_active = true
	`

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.IsActive,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}

	return user, nil
}

// UpdatePassword replaces an account's password hash
func (r *PostgresAdminUserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE admin_users SET password_hash = $1 WHERE email = $2`,
		passwordHash, email,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}
