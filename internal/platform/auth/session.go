package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated user identity inside a session token.
type Claims struct {
	jwt.RegisteredClaims
	FullName string `json:"full_name"`
}

// SessionConfig holds the signing material and lifetimes for session tokens.
type SessionConfig struct {
	Secret      []byte
	TTL         time.Duration
	RememberTTL time.Duration
}

// Sessions issues and validates opaque session tokens. The token content
// is an implementation detail of the server; clients must treat it as a
// bearer credential only.
type Sessions struct {
	cfg SessionConfig
}

func NewSessions(cfg SessionConfig) *Sessions {
	return &Sessions{cfg: cfg}
}

// Issue creates a signed session token for the given user. When remember
// is set the token uses the longer remember-me lifetime.
func (s *Sessions) Issue(userID, fullName string, remember bool) (string, time.Time, error) {
	ttl := s.cfg.TTL
	if remember {
		ttl = s.cfg.RememberTTL
	}
	now := time.Now()
	expires := now.Add(ttl)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		FullName: fullName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing session token: %w", err)
	}
	return signed, expires, nil
}

// Validate parses a session token and returns its claims. Expired or
// tampered tokens return an error.
func (s *Sessions) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.cfg.Secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("parsing session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}
