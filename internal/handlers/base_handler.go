package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/trainymonked/reviews/internal/apperrors"
	"github.com/trainymonked/reviews/internal/auth"
	"github.com/trainymonked/reviews/internal/logger"
	"github.com/trainymonked/reviews/internal/middleware"
	"github.com/trainymonked/reviews/internal/validator"
)

// BaseHandler carries the request plumbing every handler shares: body
// binding with validation, service error translation and input
// sanitization.
type BaseHandler struct {
	validator *validator.Validator

	// strict strips all markup; ugc keeps the formatting subset allowed
	// in review and comment text.
	strict *bluemonday.Policy
	ugc    *bluemonday.Policy
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
		strict:    bluemonday.StrictPolicy(),
		ugc:       bluemonday.UGCPolicy(),
	}
}

func (h *BaseHandler) BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		logger.Warn("failed to bind request body", "path", c.Request.URL.Path, "error", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.WithError(err).Error("internal validator error", "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.Warn("service error",
			"code", appErr.Code,
			"message", appErr.Message,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
		return
	}

	logger.WithError(err).Error("internal server error", "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.InternalError(err))
}

// Caller returns the resolved identity, nil for anonymous requests.
func (h *BaseHandler) Caller(c *gin.Context) *auth.Context {
	return middleware.CallerFromContext(c)
}

// SanitizeStrict strips all HTML from single-line fields.
func (h *BaseHandler) SanitizeStrict(s string) string {
	return h.strict.Sanitize(s)
}

// SanitizeUGC keeps the safe formatting subset in long-form text.
func (h *BaseHandler) SanitizeUGC(s string) string {
	return h.ugc.Sanitize(s)
}
