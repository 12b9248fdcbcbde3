package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "chronos-quiz"

var jwtSecret []byte

var (
	ErrMissingToken   = errors.New("missing session token")
	ErrInvalidClaims  = errors.New("token has no session id")
	ErrNotInitialized = errors.New("session signing key not initialized")
)

type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// InitWithSecret sets the signing key and panics when it is empty.
func InitWithSecret(secret string) {
	if secret == "" {
		panic("SESSION_SECRET must be set")
	}
	jwtSecret = []byte(secret)
}

func GenerateJWT(sessionID string, duration time.Duration) (string, error) {
	if len(jwtSecret) == 0 {
		return "", ErrNotInitialized
	}

	now := time.Now()
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func ValidateJWT(tokenStr string) (*Claims, error) {
	if len(jwtSecret) == 0 {
		return nil, ErrNotInitialized
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, err
	}
	if claims.SessionID == "" {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
