// Package auth holds the local HS256 token path used for development and
// tests. Production deployments run against Auth0 instead; see the
// middleware package.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/golang-jwt/jwt/v5"
)

// CreateToken signs a short-lived HS256 token for the given subject.
func CreateToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"sub": subject,
			"exp": time.Now().Add(ttl).Unix(),
			"iat": time.Now().Unix(),
		})

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// LocalValidator verifies HS256 tokens and produces the same claims shape
// the Auth0 validator does, so identity extraction downstream is identical
// in both modes.
type LocalValidator struct {
	secret []byte
}

func NewLocalValidator(secret []byte) *LocalValidator {
	return &LocalValidator{secret: secret}
}

func (v *LocalValidator) ValidateToken(_ context.Context, tokenString string) (interface{}, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: subject},
	}, nil
}
