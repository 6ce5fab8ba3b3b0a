package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trainymonked/reviews/internal/services"
	"github.com/trainymonked/reviews/internal/services/dto"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("/:userId", h.GetProfile)
		users.PUT("/locale", h.UpdateLocale)
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateLocale(c *gin.Context) {
	var req dto.UpdateLocaleRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	user, err := h.userService.UpdateLocale(h.Caller(c), req.PreferredLocale)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
