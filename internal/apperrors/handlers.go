package apperrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes err as the JSON error response. Unknown error types
// are wrapped as internal errors with the original hidden from the client.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !As(err, &appErr) {
		appErr = &AppError{
			Code:     CodeInternalError,
			Message:  "Internal server error",
			HTTPCode: http.StatusInternalServerError,
			Err:      err,
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}
