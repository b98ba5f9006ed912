package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/shared/server/respond"
)

// APIKey rejects requests whose X-Api-Key header does not match the
// configured key. An empty configured key disables the check, which is the
// dev default.
func APIKey(key string) gin.HandlerFunc {
	key = strings.TrimSpace(key)
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		provided := strings.TrimSpace(c.GetHeader("X-Api-Key"))
		if provided == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing api key", nil)
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid api key", nil)
			return
		}
		c.Next()
	}
}
