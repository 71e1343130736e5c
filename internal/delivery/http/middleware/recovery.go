package middleware

import (
	"net/http"

	"go-hr-dashboard-backend/internal/delivery/http/response"
	"go-hr-dashboard-backend/internal/domain"
	"go-hr-dashboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into the generic 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Log.Error("Panic recovered",
			"panic", recovered,
			"path", c.FullPath(),
			"request_id", c.GetString(string(domain.KeyRequestID)),
		)
		response.Error(c, http.StatusInternalServerError, genericErrorMessage, "")
		c.Abort()
	})
}
