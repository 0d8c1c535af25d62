package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_SessionTokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")

	tokenID, token, err := service.GenerateSessionToken(42, "mel@x.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "mel@x.com", claims.Email)
	assert.Equal(t, tokenID, claims.ID)

	// expiry sits two hours out
	assert.WithinDuration(t, time.Now().Add(SessionTokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	service := NewJWTService("test-secret")

	expired := &Claims{
		UserID: 42,
		Email:  "mel@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-3 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("issuer-secret")
	verifier := NewJWTService("other-secret")

	_, token, err := issuer.GenerateSessionToken(42, "mel@x.com")
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}
