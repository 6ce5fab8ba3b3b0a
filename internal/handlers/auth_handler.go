package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trainymonked/reviews/internal/middleware"
	"github.com/trainymonked/reviews/internal/services"
	"github.com/trainymonked/reviews/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	jwtSecret   string
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		jwtSecret:   jwtSecret,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	me := r.Group("/auth")
	me.Use(middleware.RequireAuth(h.jwtSecret))
	{
		me.GET("/me", h.Me)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate(c, &req) {
		return
	}
	req.Name = h.SanitizeStrict(req.Name)

	resp, err := h.authService.Register(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.authService.Me(h.Caller(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
