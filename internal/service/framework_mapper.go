package service

import (
	"sort"

	"values-md/internal/domain"
)

// CategoryToFramework es la tabla fija categoría de motif -> familia ética.
// Categorías sin entrada no aportan a ningún framework.
var CategoryToFramework = map[string]string{
	"consequentialism": "UTIL_ACT",
	"deontological":    "DEONT_ABSOLUTE",
	"virtue":           "VIRTUE_ARISTOTELIAN",
	"care":             "CARE_ETHICS",
	"rights":           "RIGHTS_NATURAL",
}

// MapToFrameworks traduce puntajes por motif a puntajes por familia ética.
// Cada motif aporta count * weight a la familia de su categoría. El resultado
// se ordena score desc, framework id asc.
func MapToFrameworks(scores []domain.MotifScore, catalog domain.MotifCatalog) []domain.FrameworkScore {
	totals := make(map[string]float64)

	for _, score := range scores {
		motif, ok := catalog[score.MotifID]
		if !ok {
			continue
		}
		frameworkID, mapped := CategoryToFramework[motif.Category]
		if !mapped {
			continue
		}
		totals[frameworkID] += float64(score.Count) * motif.Weight
	}

	result := make([]domain.FrameworkScore, 0, len(totals))
	for frameworkID, total := range totals {
		result = append(result, domain.FrameworkScore{
			FrameworkID: frameworkID,
			Score:       total,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].FrameworkID < result[j].FrameworkID
	})

	return result
}
