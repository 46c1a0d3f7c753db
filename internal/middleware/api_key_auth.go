package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"hospital-website-backend/internal/security"
	"hospital-website-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// APIKeyAuthMiddleware requires one of the configured API keys in the
// X-API-Key header or the api_key query parameter
func APIKeyAuthMiddleware(keys []string, auditor *security.Auditor) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := strings.TrimSpace(c.GetHeader("X-API-Key"))
		if apiKey == "" {
			apiKey = strings.TrimSpace(c.Query("api_key"))
		}

		if apiKey == "" || !validAPIKey(keys, apiKey) {
			ip := c.ClientIP()
			auditor.Record(c.Request.Context(), security.Event{
				Action:   security.ActionInvalidAPIKey,
				ClientIP: ip,
				Details:  fmt.Sprintf("Invalid API key attempt from %s on %s", ip, c.Request.URL.Path),
				Warning:  true,
			})
			utils.AbortWithError(c, http.StatusUnauthorized, "Invalid API key")
			return
		}

		c.Next()
	}
}

func validAPIKey(keys []string, candidate string) bool {
	for _, key := range keys {
		if key != "" && subtle.ConstantTimeCompare([]byte(key), []byte(candidate)) == 1 {
			return true
		}
	}
	return false
}
