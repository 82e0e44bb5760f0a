package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"values-md/internal/domain"
	"values-md/internal/repository"
)

// ResponseHandler mantiene dependencias para endpoints de respuestas y demografía.
type ResponseHandler struct {
	logger       *zap.Logger
	responses    repository.ResponseRepository
	demographics repository.DemographicsRepository
}

func NewResponseHandler(
	logger *zap.Logger,
	responses repository.ResponseRepository,
	demographics repository.DemographicsRepository,
) *ResponseHandler {
	return &ResponseHandler{logger: logger, responses: responses, demographics: demographics}
}

type responseInput struct {
	DilemmaID           string `json:"dilemma_id" binding:"required"`
	ChosenOption        string `json:"chosen_option" binding:"required"`
	Reasoning           string `json:"reasoning"`
	ResponseTimeMs      int    `json:"response_time_ms"`
	PerceivedDifficulty int    `json:"perceived_difficulty" binding:"required"`
}

// CreateBatch maneja POST /responses. Inserta todas las respuestas de una
// sesión en una sola transacción.
func (h *ResponseHandler) CreateBatch(c *gin.Context) {
	var req struct {
		SessionID string          `json:"session_id" binding:"required"`
		Responses []responseInput `json:"responses" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid responses request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" || len(req.Responses) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	now := time.Now().UTC()
	batch := make([]domain.UserResponse, 0, len(req.Responses))
	for _, in := range req.Responses {
		option := domain.ChosenOption(strings.ToLower(strings.TrimSpace(in.ChosenOption)))
		if !option.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chosen_option must be one of a, b, c, d"})
			return
		}
		if in.PerceivedDifficulty < 1 || in.PerceivedDifficulty > 10 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "perceived_difficulty must be between 1 and 10"})
			return
		}
		if in.ResponseTimeMs < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "response_time_ms must not be negative"})
			return
		}
		batch = append(batch, domain.UserResponse{
			ID:                  uuid.NewString(),
			SessionID:           sessionID,
			DilemmaID:           in.DilemmaID,
			ChosenOption:        option,
			Reasoning:           in.Reasoning,
			ResponseTimeMs:      in.ResponseTimeMs,
			PerceivedDifficulty: in.PerceivedDifficulty,
			CreatedAt:           now,
		})
	}

	if err := h.responses.CreateBatch(c.Request.Context(), batch); err != nil {
		h.logger.Error("create responses failed", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store responses"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session_id": sessionID, "inserted": len(batch)})
}

// UpsertDemographics maneja POST /demographics.
func (h *ResponseHandler) UpsertDemographics(c *gin.Context) {
	var req struct {
		SessionID          string `json:"session_id" binding:"required"`
		AgeRange           string `json:"age_range"`
		EducationLevel     string `json:"education_level"`
		CulturalBackground string `json:"cultural_background"`
		Profession         string `json:"profession"`
		ConsentResearch    bool   `json:"consent_research"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid demographics request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	demo := domain.UserDemographics{
		SessionID:          strings.TrimSpace(req.SessionID),
		AgeRange:           req.AgeRange,
		EducationLevel:     req.EducationLevel,
		CulturalBackground: req.CulturalBackground,
		Profession:         req.Profession,
		ConsentResearch:    req.ConsentResearch,
		CreatedAt:          time.Now().UTC(),
	}
	if demo.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.demographics.Upsert(c.Request.Context(), demo); err != nil {
		h.logger.Error("upsert demographics failed", zap.String("session_id", demo.SessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store demographics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": demo.SessionID})
}
