// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "request-queue"

// TokenManager issues and validates DJ bearer tokens (HS256).
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

type djClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Claims is the validated content of a DJ token
type Claims struct {
	DJID     string
	Username string
	Role     string
}

// Issue creates a signed token with the DJ ID as subject
func (m *TokenManager) Issue(djID, username, role string) (string, error) {
	now := time.Now()
	claims := djClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   djID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Username: username,
		Role:     role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses a token and returns its claims
func (m *TokenManager) Validate(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &djClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*djClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}

	return Claims{DJID: claims.Subject, Username: claims.Username, Role: claims.Role}, nil
}
