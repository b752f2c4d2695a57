package middleware

import (
	"errors"
	"net/http"

	"alumni-portal-backend/internal/delivery/http/response"
	"alumni-portal-backend/pkg/apperror"
	"alumni-portal-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler maps errors appended to the gin context onto the JSON
// envelope. AppErrors keep their kind and message; anything else is logged
// server-side and surfaced as a generic internal error so storage-specific
// detail never leaks to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, gin.H{"kind": appErr.Kind})
			} else {
				logger.Log.Error("unhandled error", "error", err, "path", c.FullPath())
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", gin.H{"kind": apperror.KindInternal})
			}
		}
	}
}
