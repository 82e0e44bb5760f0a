package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"values-md/internal/domain"
	"values-md/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password too short")
)

const minPasswordLength = 8

// AdminService maneja autenticación y cambio de contraseña del panel.
type AdminService struct {
	logger *zap.Logger
	admins repository.AdminRepository
}

func NewAdminService(logger *zap.Logger, admins repository.AdminRepository) *AdminService {
	return &AdminService{logger: logger, admins: admins}
}

// Authenticate valida email y contraseña contra el hash bcrypt almacenado.
func (s *AdminService) Authenticate(ctx context.Context, email, password string) (domain.AdminUser, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return domain.AdminUser{}, ErrInvalidCredentials
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AdminUser{}, ErrInvalidCredentials
		}
		return domain.AdminUser{}, fmt.Errorf("get admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return domain.AdminUser{}, ErrInvalidCredentials
	}
	return admin, nil
}

// ChangePassword verifica la contraseña actual y persiste el nuevo hash.
func (s *AdminService) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	if len(strings.TrimSpace(newPassword)) < minPasswordLength {
		return ErrWeakPassword
	}

	admin, err := s.Authenticate(ctx, email, currentPassword)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.admins.UpdatePassword(ctx, admin.ID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("admin password changed", zap.String("admin_id", admin.ID))
	}
	return nil
}

// EnsureAdmin crea o actualiza la cuenta de admin. Lo usa el seed.
func (s *AdminService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrInvalidCredentials
	}
	if len(strings.TrimSpace(password)) < minPasswordLength {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	return s.admins.Upsert(ctx, domain.AdminUser{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
