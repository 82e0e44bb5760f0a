package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"values-md/internal/domain"
)

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (domain.AdminUser, error)
	Upsert(ctx context.Context, admin domain.AdminUser) error
	UpdatePassword(ctx context.Context, adminID, passwordHash string) error
}

type PgAdminRepository struct {
	pool *pgxpool.Pool
}

func NewPgAdminRepository(pool *pgxpool.Pool) *PgAdminRepository {
	return &PgAdminRepository{pool: pool}
}

func (r *PgAdminRepository) GetByEmail(ctx context.Context, email string) (domain.AdminUser, error) {
	const query = `
		SELECT id, email, password_hash, created_at, updated_at
		FROM admin_users
		WHERE email = $1
	`

	var admin domain.AdminUser
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		return domain.AdminUser{}, err
	}
	return admin, nil
}

func (r *PgAdminRepository) Upsert(ctx context.Context, admin domain.AdminUser) error {
	const query = `
		INSERT INTO admin_users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email)
		DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		admin.ID,
		admin.Email,
		admin.PasswordHash,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	return err
}

func (r *PgAdminRepository) UpdatePassword(ctx context.Context, adminID, passwordHash string) error {
	const query = `
		UPDATE admin_users
		SET password_hash = $2, updated_at = now()
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, adminID, passwordHash)
	return err
}
