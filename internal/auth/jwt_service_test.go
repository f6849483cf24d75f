package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, expiresAt, err := svc.GenerateToken(42, "johndoe")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "johndoe", claims.Username)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_TokensAreUnique(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	a, _, err := svc.GenerateToken(1, "a")
	require.NoError(t, err)
	b, _, err := svc.GenerateToken(1, "a")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestJWTService_ValidateRejects(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	valid, _, err := svc.GenerateToken(7, "x")
	require.NoError(t, err)

	expired, _, err := NewJWTService("test-secret", -time.Minute).GenerateToken(7, "x")
	require.NoError(t, err)

	otherKey, _, err := NewJWTService("other-secret", time.Hour).GenerateToken(7, "x")
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 7}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	zeroUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"empty":          "",
		"garbage":        "not-a-jwt",
		"expired":        expired,
		"wrong key":      otherKey,
		"tampered":       tampered,
		"alg none":       noneToken,
		"missing userId": zeroUser,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := svc.ValidateToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestNewJWTService_DefaultExpiry(t *testing.T) {
	assert.Equal(t, DefaultTokenExpiry, NewJWTService("s", 0).Expiry())
	assert.Equal(t, time.Minute, NewJWTService("s", time.Minute).Expiry())
}
