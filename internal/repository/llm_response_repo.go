package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"values-md/internal/domain"
)

type LLMResponseRepository interface {
	Create(ctx context.Context, resp domain.LLMResponse) error
	ListByExperimentID(ctx context.Context, experimentID string) ([]domain.LLMResponse, error)
}

type PgLLMResponseRepository struct {
	pool *pgxpool.Pool
}

func NewPgLLMResponseRepository(pool *pgxpool.Pool) *PgLLMResponseRepository {
	return &PgLLMResponseRepository{pool: pool}
}

func (r *PgLLMResponseRepository) Create(ctx context.Context, resp domain.LLMResponse) error {
	const query = `
		INSERT INTO llm_responses (id, experiment_id, model_id, dilemma_id,
			chosen_option, reasoning, values_guided, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		resp.ID,
		resp.ExperimentID,
		resp.ModelID,
		resp.DilemmaID,
		string(resp.ChosenOption),
		nullable(resp.Reasoning),
		resp.ValuesGuided,
		resp.CreatedAt,
	)
	return err
}

func (r *PgLLMResponseRepository) ListByExperimentID(ctx context.Context, experimentID string) ([]domain.LLMResponse, error) {
	const query = `
		SELECT id, experiment_id, model_id, dilemma_id, chosen_option, reasoning, values_guided, created_at
		FROM llm_responses
		WHERE experiment_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, experimentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []domain.LLMResponse
	for rows.Next() {
		var resp domain.LLMResponse
		var option string
		var reasoning *string

		if err := rows.Scan(
			&resp.ID,
			&resp.ExperimentID,
			&resp.ModelID,
			&resp.DilemmaID,
			&option,
			&reasoning,
			&resp.ValuesGuided,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}
		resp.ChosenOption = domain.ChosenOption(option)
		resp.Reasoning = deref(reasoning)
		responses = append(responses, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
