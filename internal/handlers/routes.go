// internal/handlers/routes.go
package handlers

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/mamacare-api/internal/middleware"
	"github.com/harentsoaR/mamacare-api/internal/utils"
)

type RouterConfig struct {
	Tokens         *utils.TokenService
	AllowedOrigins []string
	AuthLimiter    *middleware.RateLimiter
	Logger         *slog.Logger
}

// NewRouter mounts every endpoint of the API on a fresh gin engine.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.GET("/", h.Home)
	r.GET("/health", h.HealthCheck)

	authRoutes := r.Group("/auth")
	{
		limited := authRoutes.Group("", middleware.RateLimit(cfg.AuthLimiter))
		limited.POST("/signup/user", h.SignupUser)
		limited.POST("/signup/doctor", h.SignupDoctor)
		limited.POST("/login/user", h.LoginUser)
		limited.POST("/login/doctor", h.LoginDoctor)

		authRoutes.POST("/refresh", h.Refresh)
		authRoutes.POST("/logout", h.Logout)

		protected := authRoutes.Group("", middleware.AuthMiddleware(cfg.Tokens))
		protected.GET("/me", h.GetCurrentUser)
		protected.POST("/watch-history", h.RecordView)
		protected.GET("/watch-history", h.GetWatchHistory)
	}

	videoRoutes := r.Group("/videos")
	videoRoutes.Use(middleware.AuthMiddleware(cfg.Tokens))
	{
		videoRoutes.POST("", h.UploadVideo)
		videoRoutes.POST("/", h.UploadVideo)
		videoRoutes.GET("", h.GetVideos)
		videoRoutes.GET("/", h.GetVideos)
		videoRoutes.DELETE("/:id", h.DeleteVideo)
	}

	return r
}
