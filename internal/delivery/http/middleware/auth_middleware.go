package middleware

import (
	"context"
	"strings"

	"go-hr-dashboard-backend/internal/domain"
	"go-hr-dashboard-backend/pkg/apperror"
	"go-hr-dashboard-backend/pkg/auth"
	"go-hr-dashboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SessionVerifier resolves a session token to the caller's user id.
type SessionVerifier interface {
	Subject(token string) (string, error)
}

var _ SessionVerifier = (*auth.Verifier)(nil)

// AuthMiddleware rejects requests without a valid Supabase session and
// stores the caller's user id under domain.KeyUserID. Roles are not read from
// the token; the dashboard usecase loads them from the caller's profile.
func AuthMiddleware(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)

		userID, err := verifier.Subject(tokenString)
		if err != nil {
			logger.Log.Debug("Session rejected", "error", err, "path", c.FullPath())
			message := "Invalid or expired session"
			if tokenString == "" {
				message = "Authorization header or auth_token cookie required"
			}
			c.Error(apperror.Unauthorized(message))
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), userID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), domain.KeyUserID, userID))

		c.Next()
	}
}

// extractToken reads the bearer token, falling back to the auth_token cookie.
func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}
