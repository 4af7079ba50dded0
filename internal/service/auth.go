package service

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// requireAdmin gates the admin endpoints behind the shared secret. The token
// is taken from an "Authorization: Bearer <token>" header if present,
// otherwise from the "token" query parameter. An unconfigured secret denies
// every request with a server error, never silently allows.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.adminToken == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"ok": false, "error": "admin token not configured"})
			return
		}
		provided := bearerToken(c.GetHeader("Authorization"))
		if provided == "" {
			provided = c.Query("token")
		}
		if provided == "" || provided != s.adminToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"ok": false, "error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// bearerToken extracts the token from a Bearer authorization header, or
// returns "" if the header is absent or not a Bearer scheme.
func bearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
