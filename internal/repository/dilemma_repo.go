package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"values-md/internal/domain"
)

type DilemmaRepository interface {
	GetByID(ctx context.Context, dilemmaID string) (domain.Dilemma, error)
	GetRandom(ctx context.Context) (domain.Dilemma, error)
	ListRandomExcluding(ctx context.Context, excludeID string, limit int) ([]domain.Dilemma, error)
	ListByIDs(ctx context.Context, dilemmaIDs []string) ([]domain.Dilemma, error)
	Create(ctx context.Context, dilemma domain.Dilemma) error
}

const dilemmaColumns = `
	dilemma_id, domain, generator_type, difficulty, title, scenario,
	choice_a, choice_a_motif, choice_b, choice_b_motif,
	choice_c, choice_c_motif, choice_d, choice_d_motif,
	cultural_context, created_at
`

type PgDilemmaRepository struct {
	pool *pgxpool.Pool
}

func NewPgDilemmaRepository(pool *pgxpool.Pool) *PgDilemmaRepository {
	return &PgDilemmaRepository{pool: pool}
}

func (r *PgDilemmaRepository) GetByID(ctx context.Context, dilemmaID string) (domain.Dilemma, error) {
	const query = `SELECT ` + dilemmaColumns + ` FROM dilemmas WHERE dilemma_id = $1`

	row := r.pool.QueryRow(ctx, query, dilemmaID)
	return scanDilemma(row)
}

func (r *PgDilemmaRepository) GetRandom(ctx context.Context) (domain.Dilemma, error) {
	const query = `SELECT ` + dilemmaColumns + ` FROM dilemmas ORDER BY RANDOM() LIMIT 1`

	row := r.pool.QueryRow(ctx, query)
	return scanDilemma(row)
}

func (r *PgDilemmaRepository) ListRandomExcluding(ctx context.Context, excludeID string, limit int) ([]domain.Dilemma, error) {
	const query = `
		SELECT ` + dilemmaColumns + `
		FROM dilemmas
		WHERE dilemma_id <> $1
		ORDER BY RANDOM()
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, excludeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDilemmas(rows)
}

func (r *PgDilemmaRepository) ListByIDs(ctx context.Context, dilemmaIDs []string) ([]domain.Dilemma, error) {
	if len(dilemmaIDs) == 0 {
		return nil, nil
	}

	const query = `SELECT ` + dilemmaColumns + ` FROM dilemmas WHERE dilemma_id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, dilemmaIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDilemmas(rows)
}

func (r *PgDilemmaRepository) Create(ctx context.Context, dilemma domain.Dilemma) error {
	const query = `
		INSERT INTO dilemmas (dilemma_id, domain, generator_type, difficulty, title, scenario,
			choice_a, choice_a_motif, choice_b, choice_b_motif,
			choice_c, choice_c_motif, choice_d, choice_d_motif,
			cultural_context, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (dilemma_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		dilemma.ID,
		dilemma.Domain,
		dilemma.GeneratorType,
		dilemma.Difficulty,
		dilemma.Title,
		dilemma.Scenario,
		dilemma.ChoiceA,
		nullable(dilemma.ChoiceAMotif),
		dilemma.ChoiceB,
		nullable(dilemma.ChoiceBMotif),
		dilemma.ChoiceC,
		nullable(dilemma.ChoiceCMotif),
		dilemma.ChoiceD,
		nullable(dilemma.ChoiceDMotif),
		dilemma.CulturalContext,
		dilemma.CreatedAt,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDilemma(row rowScanner) (domain.Dilemma, error) {
	var d domain.Dilemma
	var dom, genType, aMotif, bMotif, cMotif, dMotif, culture *string
	var difficulty *int

	err := row.Scan(
		&d.ID,
		&dom,
		&genType,
		&difficulty,
		&d.Title,
		&d.Scenario,
		&d.ChoiceA,
		&aMotif,
		&d.ChoiceB,
		&bMotif,
		&d.ChoiceC,
		&cMotif,
		&d.ChoiceD,
		&dMotif,
		&culture,
		&d.CreatedAt,
	)
	if err != nil {
		return domain.Dilemma{}, err
	}
	d.Domain = deref(dom)
	d.GeneratorType = deref(genType)
	d.ChoiceAMotif = deref(aMotif)
	d.ChoiceBMotif = deref(bMotif)
	d.ChoiceCMotif = deref(cMotif)
	d.ChoiceDMotif = deref(dMotif)
	d.CulturalContext = deref(culture)
	if difficulty != nil {
		d.Difficulty = *difficulty
	}
	return d, nil
}

func scanDilemmas(rows interface {
	rowScanner
	Next() bool
	Err() error
}) ([]domain.Dilemma, error) {
	var dilemmas []domain.Dilemma
	for rows.Next() {
		d, err := scanDilemma(rows)
		if err != nil {
			return nil, err
		}
		dilemmas = append(dilemmas, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dilemmas, nil
}

// nullable convierte cadenas vacías en NULL para columnas opcionales.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
