package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"daybook/config"
	"daybook/dao"
	"daybook/internal/auth"
	"daybook/model"
)

// AuthMiddleware resolves the session cookie to a user id via Redis. The
// cookie value is opaque; everything about the session lives server-side.
func AuthMiddleware(session *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(config.GlobalConfig.Session.CookieName)
		if err != nil || sid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			c.Abort()
			return
		}

		ttl := time.Duration(config.GlobalConfig.Session.TTLSeconds) * time.Second
		userID, err := session.UserID(sid, ttl)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("session_id", sid)
		c.Next()
	}
}

// RequirePermission loads the user's role and checks the permission map.
// Deactivated accounts are rejected here as well.
func RequirePermission(users *dao.UserDAO, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint64("user_id")
		user, err := users.GetByID(userID)
		if err != nil || !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "account unavailable"})
			c.Abort()
			return
		}
		if !user.UserRole.Can(permission) {
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			c.Abort()
			return
		}
		c.Set("user_role", user.UserRole)
		c.Next()
	}
}

// RequireAdmin is RequirePermission specialized for the admin panel.
func RequireAdmin(users *dao.UserDAO) gin.HandlerFunc {
	return RequirePermission(users, model.PermManageUsers)
}
