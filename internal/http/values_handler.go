package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"values-md/internal/service"
)

// ValuesHandler mantiene dependencias para la generación de perfiles values.md.
type ValuesHandler struct {
	logger    *zap.Logger
	valuesSvc *service.ValuesService
}

func NewValuesHandler(logger *zap.Logger, valuesSvc *service.ValuesService) *ValuesHandler {
	return &ValuesHandler{logger: logger, valuesSvc: valuesSvc}
}

// Generate maneja POST /values/generate.
func (h *ValuesHandler) Generate(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid values generate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile, err := h.valuesSvc.GenerateProfile(c.Request.Context(), req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoResponses):
			c.JSON(http.StatusNotFound, gin.H{"error": "no responses for session"})
			return
		case errors.Is(err, service.ErrInsufficientData):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		default:
			h.logger.Error("generate profile failed", zap.String("session_id", req.SessionID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate profile"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
