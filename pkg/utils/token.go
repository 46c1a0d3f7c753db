package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GenerateSessionToken generates a random opaque session token
func GenerateSessionToken() string {
	return uuid.New().String()
}

// HashToken creates a SHA-256 hash of a token for secure storage
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// CSRFClaims represents the claims carried by the csrftoken cookie
type CSRFClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

// CSRFSigner issues and verifies HMAC-signed CSRF tokens
type CSRFSigner struct {
	secret []byte
	expiry time.Duration
}

// NewCSRFSigner creates a signer with the given secret and lifetime
func NewCSRFSigner(secret string, expiry time.Duration) *CSRFSigner {
	return &CSRFSigner{secret: []byte(secret), expiry: expiry}
}

// Expiry returns the token lifetime
func (s *CSRFSigner) Expiry() time.Duration {
	return s.expiry
}

// Generate issues a new CSRF token
func (s *CSRFSigner) Generate() (string, error) {
	now := time.Now()
	claims := CSRFClaims{
		Nonce: uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses a CSRF token and checks its signature and expiry
func (s *CSRFSigner) Validate(tokenString string) (*CSRFClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CSRFClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*CSRFClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
