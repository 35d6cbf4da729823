// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package middleware

import (
	"net/http"
	"strings"

	"github.com/tomtom215/conventus/internal/session"
)

// TokenParser validates a bearer token and returns the session it carries.
// Satisfied by *session.Manager.
type TokenParser interface {
	Parse(token string) (session.Session, error)
}

// Authenticate verifies the Authorization bearer token and stores the
// decoded session in the request context. Requests without a valid token
// are rejected with 401; handlers downstream can rely on
// session.FromContext returning a valid session.
func Authenticate(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w)
				return
			}

			sess, err := parser.Parse(token)
			if err != nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		})
	}
}

// bearerToken extracts the token from the Authorization header, falling
// back to the token query parameter for WebSocket clients that cannot
// set headers.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck // best-effort error body
	w.Write([]byte(`{"status":"error","error":{"code":"UNAUTHORIZED","message":"valid session token required"}}`))
}
