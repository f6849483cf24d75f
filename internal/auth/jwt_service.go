package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// DefaultTokenExpiry is used when no positive expiry is configured.
const DefaultTokenExpiry = 24 * time.Hour

// ErrInvalidToken covers malformed, tampered and expired tokens alike.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents the session token payload.
type Claims struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HMAC-signed session tokens.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService creates a new JWT service with the given secret and token lifetime.
func NewJWTService(secret string, expiry time.Duration) *JWTService {
	if expiry == 0 {
		expiry = DefaultTokenExpiry
	}
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Expiry returns the configured token lifetime.
func (s *JWTService) Expiry() time.Duration {
	return s.expiry
}

// GenerateToken issues a session token bound to the user.
func (s *JWTService) GenerateToken(userID uint, username string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken validates a token and returns its claims. Every failure is
// reported as ErrInvalidToken.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
