// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

// Package session provides the explicit user context passed into every
// ledger and ranker call. There is no ambient current-user state anywhere
// in Conventus; a Session value travels by argument from the HTTP boundary
// down into the core.
//
// Sessions are minted and parsed as HS256 JWTs by Manager. The core only
// ever sees the decoded Session; token mechanics stay at the boundary.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotAuthenticated indicates an operation was attempted without a
// valid user context.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// Session is an authenticated user context. The zero value is
// unauthenticated.
type Session struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Valid reports whether the session carries a user.
func (s Session) Valid() bool {
	return s.UserID != ""
}

// UserID extracts the authenticated user from a session, or
// ErrNotAuthenticated when the session is empty.
func UserID(s Session) (string, error) {
	if !s.Valid() {
		return "", ErrNotAuthenticated
	}
	return s.UserID, nil
}

type contextKey struct{}

// NewContext returns a context carrying the session.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext retrieves the session stored by NewContext. Returns the zero
// session when none is present.
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(contextKey{}).(Session); ok {
		return s
	}
	return Session{}
}

// claims is the JWT claim set for a session token.
type claims struct {
	jwt.RegisteredClaims
}

// Manager mints and validates session tokens. Uses HMAC-SHA256 signing.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a session token manager.
// The secret must be at least 32 bytes.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 characters, got %d", len(secret))
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed token for the given user.
func (m *Manager) Issue(userID string) (string, error) {
	if userID == "" {
		return "", ErrNotAuthenticated
	}

	now := time.Now()
	c := &claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns the session it carries.
// Expired, tampered, or malformed tokens yield ErrNotAuthenticated.
func (m *Manager) Parse(tokenString string) (Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("parse session token: %w", errors.Join(ErrNotAuthenticated, err))
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.Subject == "" {
		return Session{}, ErrNotAuthenticated
	}

	s := Session{UserID: c.Subject}
	if c.IssuedAt != nil {
		s.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s, nil
}
