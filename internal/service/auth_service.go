package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pazorg/candidatetrack/internal/domain"
	"github.com/pazorg/candidatetrack/internal/identity"
)

// AuthService authenticates recruiting-team admins. There is a single admin
// role; a valid token grants the whole admin surface.
type AuthService struct {
	users    domain.AdminUserRepository
	jwtKey   []byte
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(users domain.AdminUserRepository, jwtKey string, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		users:    users,
		jwtKey:   []byte(jwtKey),
		tokenTTL: 8 * time.Hour,
		logger:   logger,
	}
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// LoginResult represents a successful login response
type LoginResult struct {
	Email     string `json:"email"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // seconds
	TokenType string `json:"token_type"`
}

// ErrInvalidCredentials is returned for any login failure; the cause is not
// distinguished to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Login authenticates an admin and returns a JWT token
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = identity.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Info("login attempt with unknown email", slog.String("email", email))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login failed with wrong password", slog.String("email", email))
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin logged in", slog.String("email", user.Email))

	return &LoginResult{
		Email:     user.Email,
		Token:     token,
		ExpiresIn: int(s.tokenTTL.Seconds()),
		TokenType: "Bearer",
	}, nil
}

// CreateAdmin registers a new admin account
func (s *AuthService) CreateAdmin(ctx context.Context, email, password string) error {
	email = identity.NormalizeEmail(email)
	if email == "" {
		return &domain.ValidationError{Field: "email", Reason: "required"}
	}
	if len(password) < 8 {
		return &domain.ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return &domain.ValidationError{Field: "email", Reason: "already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", slog.String("error", err.Error()))
		return errors.New("failed to create admin")
	}

	user := &domain.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("failed to create admin", slog.String("error", err.Error()))
		return errors.New("failed to create admin")
	}

	return nil
}

// ChangePassword replaces an admin's password after verifying the current one
func (s *AuthService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return &domain.ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}

	user, err := s.users.GetByEmail(ctx, identity.NormalizeEmail(email))
	if err != nil {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash new password", slog.String("error", err.Error()))
		return errors.New("failed to change password")
	}

	if err := s.users.UpdatePassword(ctx, user.Email, string(hash)); err != nil {
		s.logger.Error("failed to update password", slog.String("error", err.Error()))
		return errors.New("failed to change password")
	}

	s.logger.Info("admin changed password", slog.String("email", user.Email))
	return nil
}

// VerifyToken verifies and parses a JWT token
func (s *AuthService) VerifyToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func (s *AuthService) generateToken(user *domain.AdminUser) (string, error) {
	now := time.Now()

	claims := &TokenClaims{
		Email: user.Email,
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "candidatetrack",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		s.logger.Error("failed to sign token", slog.String("error", err.Error()))
		return "", errors.New("failed to generate token")
	}

	return tokenString, nil
}
