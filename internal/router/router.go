package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/uniadmit/proctor-gateway/internal/config"
	"github.com/uniadmit/proctor-gateway/internal/handler"
	"github.com/uniadmit/proctor-gateway/internal/middleware"
	"github.com/uniadmit/proctor-gateway/internal/response"
	"github.com/uniadmit/proctor-gateway/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Session *handler.SessionHandler
	WS      *handler.WSHandler
	Monitor *handler.MonitorHandler
	System  *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health probes.
	router.GET("/health", handlers.System.Health)
	router.GET("/ready", handlers.System.Ready)

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
	}

	// ─── 2. Applicant Group (Session-Scoped JWT) ───────────────────────
	sessions := router.Group("/api/v1/sessions")
	sessions.Use(middleware.RequireApplicantJWT(authService))
	{
		sessions.GET("/:session_id/state", handlers.Session.GetState)
		sessions.GET("/:session_id/result", handlers.Session.GetResult)
	}

	// ─── 3. WebSocket Group (Applicant WS Auth) ────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireApplicantWSAuth(authService))
	{
		ws.GET("/sessions/:session_id/stream", handlers.WS.SessionStream)
	}

	// ─── 4. Operator Group (Operator JWT) ──────────────────────────────
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.RequireOperatorJWT(authService))
	{
		admin.GET("/sessions/:session_id/events", handlers.Monitor.SessionEventsSSE)
		admin.GET("/system/queues", handlers.System.QueueStatus)
	}

	return router
}
