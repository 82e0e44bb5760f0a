package domain

import "time"

// UserResponse es la respuesta anónima de una sesión a un dilema.
// Se crea una sola vez; el pipeline de agregación solo la lee.
type UserResponse struct {
	ID                  string       `json:"response_id"`
	SessionID           string       `json:"session_id"`
	DilemmaID           string       `json:"dilemma_id"`
	ChosenOption        ChosenOption `json:"chosen_option"`
	Reasoning           string       `json:"reasoning,omitempty"`
	ResponseTimeMs      int          `json:"response_time_ms"`
	PerceivedDifficulty int          `json:"perceived_difficulty"`
	CreatedAt           time.Time    `json:"created_at"`
}

// SessionSummary agrupa actividad por sesión para el panel de admin.
type SessionSummary struct {
	SessionID     string    `json:"session_id"`
	ResponseCount int       `json:"response_count"`
	LastResponse  time.Time `json:"last_response"`
}

// UserDemographics son datos demográficos opcionales ligados a una sesión.
type UserDemographics struct {
	SessionID          string    `json:"session_id"`
	AgeRange           string    `json:"age_range,omitempty"`
	EducationLevel     string    `json:"education_level,omitempty"`
	CulturalBackground string    `json:"cultural_background,omitempty"`
	Profession         string    `json:"profession,omitempty"`
	ConsentResearch    bool      `json:"consent_research"`
	CreatedAt          time.Time `json:"created_at"`
}
