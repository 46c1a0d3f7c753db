package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hospital-website-backend/internal/logger"
	"hospital-website-backend/internal/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEchoRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Sanitize(security.NewSanitizer(logger.Discard())))
	r.POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, "application/json", body)
	})
	return r
}

func postJSON(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSanitizeKeepsLargeIntegers(t *testing.T) {
	r := newEchoRouter()

	rec := postJSON(r, `{"doctor":9007199254740993,"fee":800.50,"name":"<b>Asha</b>"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"doctor":9007199254740993,"fee":800.50,"name":"Asha"}`, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "9007199254740993")
}

func TestSanitizeLeavesCleanAndMalformedBodies(t *testing.T) {
	r := newEchoRouter()

	clean := `{"doctor": 9007199254740993}`
	assert.Equal(t, clean, postJSON(r, clean).Body.String())

	trailing := `{"name":"<b>x</b>"} {"name":"y"}`
	assert.Equal(t, trailing, postJSON(r, trailing).Body.String())
}

func TestSanitizeRejectsOversizedBody(t *testing.T) {
	r := newEchoRouter()

	big := `{"message":"` + strings.Repeat("a", MaxJSONBodyBytes) + `"}`
	rec := postJSON(r, big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Request body too large"}`, rec.Body.String())
}
