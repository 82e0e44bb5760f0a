package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"values-md/internal/repository"
	"values-md/internal/service"
)

// Mínimo de respuestas para que una sesión aparezca en el panel.
const sessionListMinResponses = 3

// AdminHandler mantiene dependencias para los endpoints del panel de administración.
type AdminHandler struct {
	logger        *zap.Logger
	adminSvc      *service.AdminService
	jwtSvc        *service.JWTService
	experimentSvc *service.ExperimentService
	responses     repository.ResponseRepository
}

func NewAdminHandler(
	logger *zap.Logger,
	adminSvc *service.AdminService,
	jwtSvc *service.JWTService,
	experimentSvc *service.ExperimentService,
	responses repository.ResponseRepository,
) *AdminHandler {
	return &AdminHandler{
		logger:        logger,
		adminSvc:      adminSvc,
		jwtSvc:        jwtSvc,
		experimentSvc: experimentSvc,
		responses:     responses,
	}
}

// Login maneja POST /admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	admin, err := h.adminSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.logger.Error("admin login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not login"})
		return
	}

	pair, err := h.jwtSvc.GeneratePair(admin)
	if err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": pair, "email": admin.Email})
}

// Refresh maneja POST /admin/refresh.
func (h *AdminHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	pair, err := h.jwtSvc.RefreshPair(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": pair})
}

// ChangePassword maneja POST /admin/change-password.
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.adminSvc.ChangePassword(c.Request.Context(), claims.Email, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		case errors.Is(err, service.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "password too short"})
			return
		default:
			h.logger.Error("change password failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not change password"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "password_changed"})
}

// ListSessions maneja GET /admin/sessions.
func (h *AdminHandler) ListSessions(c *gin.Context) {
	summaries, err := h.responses.ListSessionSummaries(c.Request.Context(), sessionListMinResponses)
	if err != nil {
		h.logger.Error("list sessions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": summaries})
}

// StartExperiment maneja POST /admin/experiments.
func (h *AdminHandler) StartExperiment(c *gin.Context) {
	var req struct {
		SessionID     string   `json:"session_id" binding:"required"`
		Models        []string `json:"models"`
		ScenarioLimit int      `json:"scenario_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid experiment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	state, err := h.experimentSvc.Start(c.Request.Context(), service.ExperimentConfig{
		SessionID:     req.SessionID,
		Models:        req.Models,
		ScenarioLimit: req.ScenarioLimit,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoResponses):
			c.JSON(http.StatusNotFound, gin.H{"error": "no responses for session"})
			return
		case errors.Is(err, service.ErrInsufficientData):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		default:
			h.logger.Error("start experiment failed", zap.String("session_id", req.SessionID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start experiment"})
			return
		}
	}

	c.JSON(http.StatusAccepted, gin.H{"experiment": state})
}

// ListExperiments maneja GET /admin/experiments.
func (h *AdminHandler) ListExperiments(c *gin.Context) {
	states, err := h.experimentSvc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list experiments failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list experiments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"experiments": states})
}

// GetExperiment maneja GET /admin/experiments/:id.
func (h *AdminHandler) GetExperiment(c *gin.Context) {
	state, err := h.experimentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrExperimentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "experiment not found"})
			return
		}
		h.logger.Error("get experiment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch experiment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"experiment": state})
}
