package middleware

import (
	"errors"
	"net/http"

	"go-hr-dashboard-backend/internal/delivery/http/response"
	"go-hr-dashboard-backend/internal/domain"
	"go-hr-dashboard-backend/pkg/apperror"
	"go-hr-dashboard-backend/pkg/logger"
	"go-hr-dashboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

const genericErrorMessage = "An unexpected error occurred. Please try again later."

// ErrorHandler renders the last error pushed with c.Error as a failure
// envelope. Only AppError messages reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			logger.Log.Error("Unhandled error", "error", err, "path", c.FullPath(), "request_id", c.GetString(string(domain.KeyRequestID)))
			response.Error(c, http.StatusInternalServerError, genericErrorMessage, "")
			return
		}

		audit(c, appErr)
		response.Error(c, appErr.Code, appErr.Message, appErr.StoreCode)
	}
}

// audit sends rejected requests to the security log and failures to the
// application log.
func audit(c *gin.Context, appErr *apperror.AppError) {
	var event security.EventType
	switch appErr.Kind {
	case apperror.KindUnauthenticated:
		event = security.EventUnauthorizedAccess
	case apperror.KindForbidden:
		event = security.EventForbiddenAccess
	case apperror.KindProfileNotFound:
		event = security.EventProfileMissing
	case apperror.KindInvalidParameter:
		event = security.EventValidationFailed
	default:
		logger.Log.Error("Request failed",
			"kind", appErr.Kind,
			"store_code", appErr.StoreCode,
			"error", appErr.Err,
			"path", c.FullPath(),
			"request_id", c.GetString(string(domain.KeyRequestID)),
		)
		return
	}

	security.DefaultLogger().LogAccessDenied(
		c.Request.Context(),
		event,
		c.GetString(string(domain.KeyUserID)),
		c.ClientIP(),
		c.GetHeader("User-Agent"),
		c.GetString(string(domain.KeyRequestID)),
		c.Request.URL.Path,
		appErr.Message,
	)
}
