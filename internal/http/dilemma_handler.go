package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"values-md/internal/domain"
	"values-md/internal/repository"
)

// Tamaño del set de exploración: el dilema pedido más 11 aleatorios.
const dilemmaSetSize = 12

// DilemmaHandler mantiene dependencias para endpoints de dilemas.
type DilemmaHandler struct {
	logger   *zap.Logger
	dilemmas repository.DilemmaRepository
}

func NewDilemmaHandler(logger *zap.Logger, dilemmas repository.DilemmaRepository) *DilemmaHandler {
	return &DilemmaHandler{logger: logger, dilemmas: dilemmas}
}

// GetRandom maneja GET /dilemmas/random.
func (h *DilemmaHandler) GetRandom(c *gin.Context) {
	dilemma, err := h.dilemmas.GetRandom(c.Request.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no dilemmas available"})
			return
		}
		h.logger.Error("get random dilemma failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch dilemma"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dilemma": dilemma})
}

// GetSet maneja GET /dilemmas/:id. Devuelve el dilema pedido seguido de
// otros aleatorios hasta completar el set de exploración.
func (h *DilemmaHandler) GetSet(c *gin.Context) {
	id := c.Param("id")

	first, err := h.dilemmas.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dilemma not found"})
			return
		}
		h.logger.Error("get dilemma failed", zap.String("dilemma_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch dilemma"})
		return
	}

	rest, err := h.dilemmas.ListRandomExcluding(c.Request.Context(), first.ID, dilemmaSetSize-1)
	if err != nil {
		h.logger.Error("list dilemmas failed", zap.String("dilemma_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch dilemmas"})
		return
	}

	set := append([]domain.Dilemma{first}, rest...)
	c.JSON(http.StatusOK, gin.H{"dilemmas": set, "start_index": 0})
}
