package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer creates and verifies signed bearer tokens carrying the
// platform (external) user identity.
type TokenIssuer struct {
	secret   []byte
	duration time.Duration
}

// NewTokenIssuer creates a new token issuer
func NewTokenIssuer(secret string, duration time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(secret),
		duration: duration,
	}
}

// Issue creates a signed token for the given external user ID
func (t *TokenIssuer) Issue(externalID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   externalID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.duration)),
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a token and returns the external user ID it carries
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))

	claims := &jwt.RegisteredClaims{}
	parsed, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
