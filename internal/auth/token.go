// Package auth implements the bearer token codec and password hashing.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// DefaultTTL is how long an issued token stays valid.
	DefaultTTL = 24 * time.Hour

	// Issuer and Audience are stamped into every token and required on decode.
	Issuer   = "bucketlist-api"
	Audience = "bucketlist-client"
)

var (
	// ErrTokenExpired is returned when the token's expiry is at or before the decode time.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed covers bad signatures, wrong algorithms and missing or unparsable claims.
	ErrTokenMalformed = errors.New("token malformed")
)

// TokenCodec issues and decodes HS256 tokens whose subject is a user identity.
// It holds no mutable state and is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec returns a codec signing with secret. A non-positive ttl falls back to DefaultTTL.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("JWT secret not configured")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the lifetime applied to issued tokens.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for identity valid from now until now+TTL.
func (c *TokenCodec) Issue(identity string, now time.Time) (string, error) {
	if identity == "" {
		return "", fmt.Errorf("token subject must not be empty")
	}

	claims := jwt.RegisteredClaims{
		Subject:   identity,
		Issuer:    Issuer,
		Audience:  jwt.ClaimStrings{Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and claims of token as of now and returns its subject.
func (c *TokenCodec) Decode(token string, now time.Time) (string, error) {
	if token == "" {
		return "", ErrTokenMalformed
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}
