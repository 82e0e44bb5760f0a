package domain

import "strings"

// Motif es un patrón ético/conductual del catálogo de referencia.
// Datos inmutables: se cargan una vez por corrida de agregación.
type Motif struct {
	ID                   string  `json:"motif_id"`
	Name                 string  `json:"name"`
	Category             string  `json:"category"`
	Subcategory          string  `json:"subcategory,omitempty"`
	Description          string  `json:"description,omitempty"`
	LexicalIndicators    string  `json:"lexical_indicators,omitempty"`
	BehavioralIndicators string  `json:"behavioral_indicators,omitempty"`
	LogicalPatterns      string  `json:"logical_patterns,omitempty"`
	ConflictsWith        string  `json:"conflicts_with,omitempty"`
	SynergiesWith        string  `json:"synergies_with,omitempty"`
	Weight               float64 `json:"weight"`
	CulturalVariance     string  `json:"cultural_variance,omitempty"`
	CognitiveLoad        string  `json:"cognitive_load,omitempty"`
}

// ConflictIDs devuelve los ids de motifs declarados en conflicto.
func (m Motif) ConflictIDs() []string {
	return splitIDList(m.ConflictsWith)
}

// SynergyIDs devuelve los ids de motifs declarados en sinergia.
func (m Motif) SynergyIDs() []string {
	return splitIDList(m.SynergiesWith)
}

// splitIDList separa listas "A,B,C" tal como se guardan en la columna de texto.
func splitIDList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if id := strings.TrimSpace(p); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// MotifCatalog indexa motifs por id para lookups durante la agregación.
type MotifCatalog map[string]Motif

// NewMotifCatalog construye el índice a partir de las filas del repositorio.
func NewMotifCatalog(motifs []Motif) MotifCatalog {
	catalog := make(MotifCatalog, len(motifs))
	for _, m := range motifs {
		catalog[m.ID] = m
	}
	return catalog
}
