package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minishop/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// AccountGuard re-checks the caller's account state on every authenticated
// request. JWTs outlive account changes, so disabled or blocked users must
// be stopped here even when their token is otherwise valid.
func AccountGuard(users identity.UserRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := GetJWTUserID(c)
		if userIDStr == "" {
			// Unauthenticated paths are not this middleware's concern.
			c.Next()
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			abortForbidden(c, "ERR_FORBIDDEN", "Invalid user identity")
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			logger.Warn("account guard failed to load user",
				zap.String("user_id", userIDStr),
				zap.Error(err),
			)
			abortForbidden(c, "ERR_FORBIDDEN", "Account not available")
			return
		}

		if !user.Active {
			abortForbidden(c, "ERR_ACCOUNT_DISABLED", "Account is disabled")
			return
		}

		now := time.Now()
		if user.IsBlocked(now) {
			abortForbidden(c, "ERR_ACCOUNT_BLOCKED",
				"Account is blocked until "+user.BlockedUntil.UTC().Format(time.RFC3339))
			return
		}

		c.Next()
	}
}

// RequireAdmin allows only callers with the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetJWTRole(c) != string(identity.RoleAdmin) {
			abortForbidden(c, "ERR_FORBIDDEN", "Admin role required")
			return
		}
		c.Next()
	}
}

func abortForbidden(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
