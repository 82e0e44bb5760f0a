package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"values-md/internal/domain"
)

type FrameworkRepository interface {
	List(ctx context.Context) ([]domain.Framework, error)
	Upsert(ctx context.Context, framework domain.Framework) error
}

type PgFrameworkRepository struct {
	pool *pgxpool.Pool
}

func NewPgFrameworkRepository(pool *pgxpool.Pool) *PgFrameworkRepository {
	return &PgFrameworkRepository{pool: pool}
}

func (r *PgFrameworkRepository) List(ctx context.Context) ([]domain.Framework, error) {
	const query = `
		SELECT framework_id, name, tradition, key_principle, decision_method,
		       lexical_indicators, historical_figure, modern_application
		FROM frameworks
		ORDER BY framework_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frameworks []domain.Framework
	for rows.Next() {
		var f domain.Framework
		var tradition, principle, method, lexical, figure, application *string

		if err := rows.Scan(
			&f.ID,
			&f.Name,
			&tradition,
			&principle,
			&method,
			&lexical,
			&figure,
			&application,
		); err != nil {
			return nil, err
		}
		f.Tradition = deref(tradition)
		f.KeyPrinciple = deref(principle)
		f.DecisionMethod = deref(method)
		f.LexicalIndicators = deref(lexical)
		f.HistoricalFigure = deref(figure)
		f.ModernApplication = deref(application)
		frameworks = append(frameworks, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return frameworks, nil
}

func (r *PgFrameworkRepository) Upsert(ctx context.Context, framework domain.Framework) error {
	const query = `
		INSERT INTO frameworks (framework_id, name, tradition, key_principle,
			decision_method, lexical_indicators, historical_figure, modern_application)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (framework_id)
		DO UPDATE SET
			name = EXCLUDED.name,
			tradition = EXCLUDED.tradition,
			key_principle = EXCLUDED.key_principle,
			decision_method = EXCLUDED.decision_method,
			lexical_indicators = EXCLUDED.lexical_indicators,
			historical_figure = EXCLUDED.historical_figure,
			modern_application = EXCLUDED.modern_application
	`

	_, err := r.pool.Exec(ctx, query,
		framework.ID,
		framework.Name,
		framework.Tradition,
		framework.KeyPrinciple,
		framework.DecisionMethod,
		framework.LexicalIndicators,
		framework.HistoricalFigure,
		framework.ModernApplication,
	)
	return err
}
