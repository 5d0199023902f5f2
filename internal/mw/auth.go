package mw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dog-daycare-backend/internal/auth"
	"dog-daycare-backend/internal/model"
)

// SessionCookie is the name of the cookie that carries the session token.
const SessionCookie = "daycare_session"

// Context keys set by SessionAuth.
const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
)

// SessionAuth validates the session cookie and puts the caller's identity
// into the request context. Requests without a valid session get a 401.
func SessionAuth(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := sessions.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole allows the request through only when the session role is one
// of the given roles. ADMIN passes every check.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role := c.GetString(CtxUserRole)
		if role != model.RoleAdmin && !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}
