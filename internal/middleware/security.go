package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"hospital-website-backend/internal/security"
	"hospital-website-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RequestMonitor counts requests per client IP and logs unusually busy ones
func RequestMonitor(monitor *security.RequestMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		monitor.Observe(c.Request.Context(), c.ClientIP())
		c.Next()
	}
}

// MaxJSONBodyBytes bounds the JSON body read by Sanitize
const MaxJSONBodyBytes = 1 << 20

// Sanitize strips HTML from query parameters and JSON request bodies
// Non-JSON or malformed bodies pass through for the handler to reject
func Sanitize(sanitizer *security.Sanitizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Request.URL.Query()
		if sanitizer.Query(query) {
			c.Request.URL.RawQuery = query.Encode()
		}

		if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), "application/json") {
			c.Next()
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxJSONBodyBytes))
		_ = c.Request.Body.Close()
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				utils.AbortWithError(c, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
			c.Next()
			return
		}

		if clean, ok := sanitizeJSON(sanitizer, body); ok {
			body = clean
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Request.ContentLength = int64(len(body))
		c.Next()
	}
}

// sanitizeJSON re-encodes body when a string inside it changed
// Numbers are kept as json.Number so large integers survive unchanged
func sanitizeJSON(sanitizer *security.Sanitizer, body []byte) ([]byte, bool) {
	if len(body) == 0 {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload interface{}
	if err := dec.Decode(&payload); err != nil || dec.More() {
		return nil, false
	}
	clean, changed := sanitizer.Value(payload)
	if !changed {
		return nil, false
	}
	encoded, err := json.Marshal(clean)
	if err != nil {
		return nil, false
	}
	return encoded, true
}
