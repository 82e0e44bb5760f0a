package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"values-md/internal/domain"
)

type DemographicsRepository interface {
	Upsert(ctx context.Context, demo domain.UserDemographics) error
}

type PgDemographicsRepository struct {
	pool *pgxpool.Pool
}

func NewPgDemographicsRepository(pool *pgxpool.Pool) *PgDemographicsRepository {
	return &PgDemographicsRepository{pool: pool}
}

func (r *PgDemographicsRepository) Upsert(ctx context.Context, demo domain.UserDemographics) error {
	const query = `
		INSERT INTO user_demographics (session_id, age_range, education_level,
			cultural_background, profession, consent_research, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (session_id)
		DO UPDATE SET
			age_range = EXCLUDED.age_range,
			education_level = EXCLUDED.education_level,
			cultural_background = EXCLUDED.cultural_background,
			profession = EXCLUDED.profession,
			consent_research = EXCLUDED.consent_research
	`

	_, err := r.pool.Exec(ctx, query,
		demo.SessionID,
		demo.AgeRange,
		demo.EducationLevel,
		demo.CulturalBackground,
		demo.Profession,
		demo.ConsentResearch,
		demo.CreatedAt,
	)
	return err
}
