package service

import (
	"sort"

	"values-md/internal/domain"
)

// defaultWeightNormalization reproduce la constante 5x5 de las versiones
// históricas del pipeline (punto medio de dificultad al cuadrado).
const defaultWeightNormalization = 25.0

// ValuesAggregator reduce respuestas crudas a puntajes por motif.
// Es un cálculo puro: sin estado compartido ni efectos.
type ValuesAggregator struct {
	// WeightNormalization divide el producto de dificultades. Cero usa el
	// valor histórico de 25.
	WeightNormalization float64
}

// Aggregate cuenta respuestas por motif resuelto y acumula el puntaje
// ponderado por dificultad. Las respuestas sin motif resuelto no aportan a
// ningún total. El orden del resultado es total y determinista: count desc,
// weighted desc, motif id asc; ranks desde 1.
func (a ValuesAggregator) Aggregate(
	responses []domain.UserResponse,
	dilemmas map[string]domain.Dilemma,
	catalog domain.MotifCatalog,
) []domain.MotifScore {
	norm := a.WeightNormalization
	if norm <= 0 {
		norm = defaultWeightNormalization
	}

	counts := make(map[string]int)
	weighted := make(map[string]float64)

	for _, resp := range responses {
		dilemma, ok := dilemmas[resp.DilemmaID]
		if !ok {
			continue
		}
		motifID, ok := ResolveMotif(resp, dilemma)
		if !ok {
			continue
		}
		if _, known := catalog[motifID]; !known {
			// Referencia colgante: se trata igual que un slot vacío.
			continue
		}

		counts[motifID]++
		weighted[motifID] += float64(dilemma.Difficulty*resp.PerceivedDifficulty) / norm
	}

	scores := make([]domain.MotifScore, 0, len(counts))
	for motifID, count := range counts {
		scores = append(scores, domain.MotifScore{
			MotifID:  motifID,
			Count:    count,
			Weighted: weighted[motifID],
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Count != scores[j].Count {
			return scores[i].Count > scores[j].Count
		}
		if scores[i].Weighted != scores[j].Weighted {
			return scores[i].Weighted > scores[j].Weighted
		}
		return scores[i].MotifID < scores[j].MotifID
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}

	return scores
}

// ResolvedCount devuelve cuántas respuestas resolvieron a un motif del
// catálogo. Es el denominador de los porcentajes del documento.
func ResolvedCount(scores []domain.MotifScore) int {
	total := 0
	for _, s := range scores {
		total += s.Count
	}
	return total
}
