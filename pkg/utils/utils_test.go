package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "free-eye-camp", Slugify("Free Eye Camp"))
	assert.Equal(t, "cafe-retina-2024", Slugify("  Café -- Retina, 2024! "))
	assert.Equal(t, "item", Slugify("!!!"))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cure-pass")
	require.NoError(t, err)
	assert.True(t, ComparePassword(hash, "s3cure-pass"))
	assert.False(t, ComparePassword(hash, "wrong"))

	assert.ErrorIs(t, CheckPasswordStrength("short"), ErrWeakPassword)
	assert.ErrorIs(t, CheckPasswordStrength("1234567890"), ErrWeakPassword)
	assert.NoError(t, CheckPasswordStrength("longenough1"))
}

func TestHashTokenIsStable(t *testing.T) {
	token := GenerateSessionToken()
	assert.Len(t, HashToken(token), 64)
	assert.Equal(t, HashToken(token), HashToken(token))
	assert.NotEqual(t, token, GenerateSessionToken())
}

func TestCSRFSigner(t *testing.T) {
	signer := NewCSRFSigner("secret", time.Hour)
	token, err := signer.Generate()
	require.NoError(t, err)

	claims, err := signer.Validate(token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.Nonce)

	_, err = NewCSRFSigner("other", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestParsePageAndCheck(t *testing.T) {
	page, err := ParsePage("")
	require.NoError(t, err)
	assert.Equal(t, 1, page)

	_, err = ParsePage("abc")
	assert.ErrorIs(t, err, ErrInvalidPage)
	_, err = ParsePage("0")
	assert.ErrorIs(t, err, ErrInvalidPage)

	assert.NoError(t, CheckPage(1, 0))
	assert.NoError(t, CheckPage(2, 21))
	assert.ErrorIs(t, CheckPage(3, 40), ErrInvalidPage)
	assert.Equal(t, 20, Offset(2))
}

func TestNewPageResultLinks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/news?page=2&search=eye", nil)

	res := NewPageResult(c, 2, 45, []string{})
	assert.Equal(t, 3, res.TotalPages)
	require.NotNil(t, res.Next)
	require.NotNil(t, res.Previous)
	assert.Equal(t, "/api/v1/news?page=3&search=eye", *res.Next)
	assert.Equal(t, "/api/v1/news?search=eye", *res.Previous)
}

func TestOrderClause(t *testing.T) {
	allowed := map[string]string{"created_at": "created_at", "appointment_date": "appointment_date"}
	assert.Equal(t, "appointment_date DESC, created_at ASC", OrderClause("-appointment_date,created_at", allowed, "id DESC"))
	assert.Equal(t, "id DESC", OrderClause("password; DROP", allowed, "id DESC"))
}

func TestDates(t *testing.T) {
	d, err := ParseDate("2030-02-01")
	require.NoError(t, err)
	assert.Equal(t, "2030-02-01", time.Time(d).Format("2006-01-02"))

	_, err = ParseDate("01/02/2030")
	assert.Error(t, err)

	clock, err := ParseClock("09:15")
	require.NoError(t, err)
	assert.Equal(t, datatypes.NewTime(9, 15, 0, 0), clock)

	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	late := time.Date(2030, 1, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2030-01-02", time.Time(Today(late, kolkata)).Format("2006-01-02"))
}

