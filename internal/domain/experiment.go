package domain

import "time"

// Estados posibles de un experimento de eficacia de values.md.
const (
	ExperimentRunning   = "running"
	ExperimentCompleted = "completed"
	ExperimentError     = "error"
)

// ExperimentState es el estado observable de un experimento en curso.
// Vive en un store con TTL acotado, no en memoria global.
type ExperimentState struct {
	ID          string    `json:"experiment_id"`
	SessionID   string    `json:"session_id"`
	Status      string    `json:"status"`
	Progress    int       `json:"progress"`
	TotalTasks  int       `json:"total_tasks"`
	CurrentTask string    `json:"current_task"`
	Errors      []string  `json:"errors,omitempty"`
	StartedAt   time.Time `json:"started_at"`
}

// LLMResponse es una respuesta de un modelo a un dilema durante un experimento,
// en condición control (sin values.md) o treatment (con values.md).
type LLMResponse struct {
	ID           string       `json:"id"`
	ExperimentID string       `json:"experiment_id"`
	ModelID      string       `json:"model_id"`
	DilemmaID    string       `json:"dilemma_id"`
	ChosenOption ChosenOption `json:"chosen_option"`
	Reasoning    string       `json:"reasoning,omitempty"`
	ValuesGuided bool         `json:"values_guided"`
	CreatedAt    time.Time    `json:"created_at"`
}
