package middleware

import (
	"hospital-website-backend/internal/access"
	"hospital-website-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RequirePolicy rejects requests the policy denies
// Object-level OwnerOrAdmin checks happen in handlers, which know the owner
func RequirePolicy(policy access.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := access.Evaluate(policy, CurrentActor(c), c.Request.Method, 0)
		if decision != access.Allow {
			utils.AbortWithError(c, decision.Status(), decision.Message())
			return
		}
		c.Next()
	}
}
