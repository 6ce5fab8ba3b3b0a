package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trainymonked/reviews/internal/config"
	"github.com/trainymonked/reviews/internal/handlers"
	"github.com/trainymonked/reviews/internal/middleware"
)

// RegisterRoutes mounts the API under /api/v1. Identity resolution and
// locale negotiation run for every route; write protection lives in the
// services, which reject anonymous callers.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, h *handlers.AppHandlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(
		middleware.Authenticate(cfg.JWT.Secret),
		middleware.Locale(cfg.I18n.SupportedLocales, cfg.I18n.DefaultLocale),
	)

	h.AuthHandler.RegisterRoutes(api)
	h.UserHandler.RegisterRoutes(api)
	h.PieceHandler.RegisterRoutes(api)
	h.ReviewHandler.RegisterRoutes(api)
	h.UploadHandler.RegisterRoutes(api)
	h.FileHandler.RegisterRoutes(api)
}
