package middleware

import (
	"net/http"
	"strings"

	"shootday/utils"

	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key the authenticated session lives under.
const SessionKey = "session"

// SessionAuthMiddleware gates protected views behind a valid session
// token. The JWT must verify and the session record must still exist
// in Redis, so logout invalidates immediately.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "login required"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		session, err := utils.SessionFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "invalid session"})
			return
		}

		cached, err := utils.GetSession(utils.GetSessionCacheClient(), utils.HashToken(tokenString))
		if err != nil || cached == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "session expired"})
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}
