package middleware

import (
	"strings"

	"github.com/ayatsuji/taskboard/internal/constants"
	apierrors "github.com/ayatsuji/taskboard/internal/errors"
	"github.com/ayatsuji/taskboard/internal/identity"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RequireAuth resolves the caller identity. A previously verified user ID is
// served from the session; otherwise the bearer token is verified against the
// external provider and the result is cached. No identity means 401 before
// any store access.
func RequireAuth(provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if cached := session.Get(constants.SessionKeyUserID); cached != nil {
			if userID, ok := cached.(string); ok && userID != "" {
				c.Set(constants.ContextKeyUserID, userID)
				c.Next()
				return
			}
		}

		token := bearerToken(c)
		if token == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := provider.Verify(c.Request.Context(), token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		session.Set(constants.SessionKeyUserID, claims.UserID)
		_ = session.Save()

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// GetUserID retrieves the resolved caller identity from context
func GetUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}

	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
