package middleware

import (
	"math"
	"net/http"
	"strconv"

	"hospital-website-backend/internal/config"
	"hospital-website-backend/internal/security"
	"hospital-website-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RateLimit applies the sliding-window rule for scope per client IP
func RateLimit(limiter *security.RateLimiter, scope string, rule config.RateRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := limiter.Allow(c.Request.Context(), c.ClientIP(), scope, rule)
		if !decision.Allowed {
			retry := int(math.Ceil(decision.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(retry))
			utils.AbortWithError(c, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		c.Next()
	}
}
