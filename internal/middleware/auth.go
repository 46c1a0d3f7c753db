package middleware

import (
	"errors"

	"hospital-website-backend/internal/access"
	"hospital-website-backend/internal/config"
	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/service"
	"hospital-website-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Context keys set by SessionAuth
const (
	ContextUser    = "user"
	ContextSession = "session"
	ContextActor   = "actor"
)

// SessionAuth attaches the user behind the session cookie, if any
// Requests without a valid session continue anonymously
func SessionAuth(authService *service.AuthService, cfg config.SessionConfig, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		session, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, service.ErrSessionNotFound) {
				log.WithError(err).WithField("client_ip", c.ClientIP()).Error("Failed to load session")
			}
			c.Next()
			return
		}

		// Refresh the cookie so its lifetime slides with the session
		if !cfg.ExpireAtBrowserClose {
			utils.SetCookie(c, cfg.CookieName, token, int(cfg.Age.Seconds()), true, cfg.Secure)
		}

		user := session.User
		c.Set(ContextUser, &user)
		c.Set(ContextSession, session)
		c.Set(ContextActor, &access.Actor{
			UserID:      user.ID,
			IsStaff:     user.IsStaff,
			IsSuperuser: user.IsSuperuser,
		})
		c.Next()
	}
}

// CurrentUser returns the signed-in user or nil
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUser); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// CurrentSession returns the active session or nil
func CurrentSession(c *gin.Context) *models.Session {
	if v, ok := c.Get(ContextSession); ok {
		if session, ok := v.(*models.Session); ok {
			return session
		}
	}
	return nil
}

// CurrentActor returns the caller for policy checks; nil when anonymous
func CurrentActor(c *gin.Context) *access.Actor {
	if v, ok := c.Get(ContextActor); ok {
		if actor, ok := v.(*access.Actor); ok {
			return actor
		}
	}
	return nil
}
