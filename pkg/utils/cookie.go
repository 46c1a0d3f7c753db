package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetCookie writes a SameSite=Lax cookie on path /
// maxAge 0 leaves out Max-Age so the cookie ends with the browser session
func SetCookie(c *gin.Context, name, value string, maxAge int, httpOnly, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires a cookie immediately
func ClearCookie(c *gin.Context, name string, secure bool) {
	SetCookie(c, name, "", -1, true, secure)
}
