package domain

// Framework describe una tradición ética (familia) del catálogo de referencia.
type Framework struct {
	ID                string `json:"framework_id"`
	Name              string `json:"name"`
	Tradition         string `json:"tradition,omitempty"`
	KeyPrinciple      string `json:"key_principle,omitempty"`
	DecisionMethod    string `json:"decision_method,omitempty"`
	LexicalIndicators string `json:"lexical_indicators,omitempty"`
	HistoricalFigure  string `json:"historical_figure,omitempty"`
	ModernApplication string `json:"modern_application,omitempty"`
}

// FrameworkCatalog indexa frameworks por id.
type FrameworkCatalog map[string]Framework

// NewFrameworkCatalog construye el índice a partir de las filas del repositorio.
func NewFrameworkCatalog(frameworks []Framework) FrameworkCatalog {
	catalog := make(FrameworkCatalog, len(frameworks))
	for _, f := range frameworks {
		catalog[f.ID] = f
	}
	return catalog
}
