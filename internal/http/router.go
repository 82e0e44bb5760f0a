package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"values-md/internal/service"
)

// Pinger abstrae el chequeo de conectividad de la base para /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	db Pinger,
	dilemmaH *DilemmaHandler,
	responseH *ResponseHandler,
	valuesH *ValuesHandler,
	adminH *AdminHandler,
	jwtSvc *service.JWTService,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", healthHandler(db))

	dilemmas := r.Group("/dilemmas")
	dilemmas.GET("/random", dilemmaH.GetRandom)
	dilemmas.GET("/:id", dilemmaH.GetSet)

	r.POST("/responses", responseH.CreateBatch)
	r.POST("/demographics", responseH.UpsertDemographics)
	r.POST("/values/generate", valuesH.Generate)

	admin := r.Group("/admin")
	admin.POST("/login", adminH.Login)
	admin.POST("/refresh", adminH.Refresh)

	authed := admin.Group("")
	authed.Use(JWTAuthMiddleware(jwtSvc))
	authed.GET("/sessions", adminH.ListSessions)
	authed.POST("/change-password", adminH.ChangePassword)
	authed.POST("/experiments", adminH.StartExperiment)
	authed.GET("/experiments", adminH.ListExperiments)
	authed.GET("/experiments/:id", adminH.GetExperiment)

	return r
}

func healthHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "database unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
