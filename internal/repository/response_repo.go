package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"values-md/internal/domain"
)

type ResponseRepository interface {
	CreateBatch(ctx context.Context, responses []domain.UserResponse) error
	ListBySessionID(ctx context.Context, sessionID string) ([]domain.UserResponse, error)
	ListSessionSummaries(ctx context.Context, minResponses int) ([]domain.SessionSummary, error)
}

type PgResponseRepository struct {
	pool *pgxpool.Pool
}

func NewPgResponseRepository(pool *pgxpool.Pool) *PgResponseRepository {
	return &PgResponseRepository{pool: pool}
}

func (r *PgResponseRepository) CreateBatch(ctx context.Context, responses []domain.UserResponse) error {
	const query = `
		INSERT INTO user_responses (response_id, session_id, dilemma_id, chosen_option,
			reasoning, response_time_ms, perceived_difficulty, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, resp := range responses {
		if _, err := tx.Exec(ctx, query,
			resp.ID,
			resp.SessionID,
			resp.DilemmaID,
			string(resp.ChosenOption),
			nullable(resp.Reasoning),
			resp.ResponseTimeMs,
			resp.PerceivedDifficulty,
			resp.CreatedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PgResponseRepository) ListBySessionID(ctx context.Context, sessionID string) ([]domain.UserResponse, error) {
	const query = `
		SELECT response_id, session_id, dilemma_id, chosen_option,
		       reasoning, response_time_ms, perceived_difficulty, created_at
		FROM user_responses
		WHERE session_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []domain.UserResponse
	for rows.Next() {
		var resp domain.UserResponse
		var option string
		var reasoning *string
		var responseTime, difficulty *int

		if err := rows.Scan(
			&resp.ID,
			&resp.SessionID,
			&resp.DilemmaID,
			&option,
			&reasoning,
			&responseTime,
			&difficulty,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}
		resp.ChosenOption = domain.ChosenOption(option)
		resp.Reasoning = deref(reasoning)
		if responseTime != nil {
			resp.ResponseTimeMs = *responseTime
		}
		if difficulty != nil {
			resp.PerceivedDifficulty = *difficulty
		}
		responses = append(responses, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

func (r *PgResponseRepository) ListSessionSummaries(ctx context.Context, minResponses int) ([]domain.SessionSummary, error) {
	const query = `
		SELECT session_id, count(*) AS response_count, max(created_at) AS last_response
		FROM user_responses
		GROUP BY session_id
		HAVING count(*) >= $1
		ORDER BY max(created_at) DESC
	`

	rows, err := r.pool.Query(ctx, query, minResponses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.SessionSummary
	for rows.Next() {
		var s domain.SessionSummary
		if err := rows.Scan(&s.SessionID, &s.ResponseCount, &s.LastResponse); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
