package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"values-md/internal/domain"
)

type MotifRepository interface {
	List(ctx context.Context) ([]domain.Motif, error)
	Upsert(ctx context.Context, motif domain.Motif) error
}

type PgMotifRepository struct {
	pool *pgxpool.Pool
}

func NewPgMotifRepository(pool *pgxpool.Pool) *PgMotifRepository {
	return &PgMotifRepository{pool: pool}
}

func (r *PgMotifRepository) List(ctx context.Context) ([]domain.Motif, error) {
	const query = `
		SELECT motif_id, name, category, subcategory, description,
		       lexical_indicators, behavioral_indicators, logical_patterns,
		       conflicts_with, synergies_with, weight, cultural_variance, cognitive_load
		FROM motifs
		ORDER BY motif_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var motifs []domain.Motif
	for rows.Next() {
		var m domain.Motif
		var subcategory, description, lexical, behavioral, logical *string
		var conflicts, synergies, variance, load *string
		var weight *float64

		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Category,
			&subcategory,
			&description,
			&lexical,
			&behavioral,
			&logical,
			&conflicts,
			&synergies,
			&weight,
			&variance,
			&load,
		); err != nil {
			return nil, err
		}
		m.Subcategory = deref(subcategory)
		m.Description = deref(description)
		m.LexicalIndicators = deref(lexical)
		m.BehavioralIndicators = deref(behavioral)
		m.LogicalPatterns = deref(logical)
		m.ConflictsWith = deref(conflicts)
		m.SynergiesWith = deref(synergies)
		m.CulturalVariance = deref(variance)
		m.CognitiveLoad = deref(load)
		if weight != nil {
			m.Weight = *weight
		}
		motifs = append(motifs, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return motifs, nil
}

func (r *PgMotifRepository) Upsert(ctx context.Context, motif domain.Motif) error {
	const query = `
		INSERT INTO motifs (motif_id, name, category, subcategory, description,
			lexical_indicators, behavioral_indicators, logical_patterns,
			conflicts_with, synergies_with, weight, cultural_variance, cognitive_load)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (motif_id)
		DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			subcategory = EXCLUDED.subcategory,
			description = EXCLUDED.description,
			lexical_indicators = EXCLUDED.lexical_indicators,
			behavioral_indicators = EXCLUDED.behavioral_indicators,
			logical_patterns = EXCLUDED.logical_patterns,
			conflicts_with = EXCLUDED.conflicts_with,
			synergies_with = EXCLUDED.synergies_with,
			weight = EXCLUDED.weight,
			cultural_variance = EXCLUDED.cultural_variance,
			cognitive_load = EXCLUDED.cognitive_load
	`

	_, err := r.pool.Exec(ctx, query,
		motif.ID,
		motif.Name,
		motif.Category,
		motif.Subcategory,
		motif.Description,
		motif.LexicalIndicators,
		motif.BehavioralIndicators,
		motif.LogicalPatterns,
		motif.ConflictsWith,
		motif.SynergiesWith,
		motif.Weight,
		motif.CulturalVariance,
		motif.CognitiveLoad,
	)
	return err
}

// deref convierte columnas NULL en cadena vacía.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
