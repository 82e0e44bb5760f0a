package domain

// MotifScore es el resultado por-motif de una corrida de agregación.
// Derivado, nunca persistido: vive solo durante una generación de perfil.
type MotifScore struct {
	MotifID  string  `json:"motif_id"`
	Count    int     `json:"count"`
	Weighted float64 `json:"weighted"`
	Rank     int     `json:"rank"`
}

// FrameworkScore es el puntaje agregado por familia ética. Derivado.
type FrameworkScore struct {
	FrameworkID string  `json:"framework_id"`
	Score       float64 `json:"score"`
}

// ResponseExample es un extracto de respuesta usado como ejemplo ilustrativo
// en el documento values.md.
type ResponseExample struct {
	DilemmaTitle string       `json:"dilemma_title"`
	ChosenOption ChosenOption `json:"chosen_option"`
	ChoiceText   string       `json:"choice_text,omitempty"`
	Reasoning    string       `json:"reasoning,omitempty"`
}

// ValuesProfile es la única salida visible del pipeline: puntajes ordenados,
// ejemplos y el documento markdown renderizado. El caller decide si persiste.
type ValuesProfile struct {
	SessionID       string            `json:"session_id"`
	MotifScores     []MotifScore      `json:"motif_scores"`
	FrameworkScores []FrameworkScore  `json:"framework_scores"`
	Examples        []ResponseExample `json:"examples"`
	ResponseCount   int               `json:"response_count"`
	ResolvedCount   int               `json:"resolved_count"`
	Markdown        string            `json:"values_markdown"`
}
