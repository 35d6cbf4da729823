// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/conventus/internal/session"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *session.Manager {
	t.Helper()
	manager, err := session.NewManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return manager
}

func TestAuthenticateValidToken(t *testing.T) {
	manager := newTestManager(t)
	token, err := manager.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var seen session.Session
	handler := Authenticate(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen.UserID != "alice" {
		t.Errorf("session user = %q, want alice", seen.UserID)
	}
}

func TestAuthenticateQueryParamFallback(t *testing.T) {
	manager := newTestManager(t)
	token, err := manager.Issue("bob")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var seen session.Session
	handler := Authenticate(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/?token="+token, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || seen.UserID != "bob" {
		t.Errorf("status = %d, user = %q; want 200/bob", rec.Code, seen.UserID)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	manager := newTestManager(t)

	tests := []struct {
		name  string
		setup func(*http.Request)
	}{
		{"no token", func(*http.Request) {}},
		{"malformed header", func(r *http.Request) { r.Header.Set("Authorization", "Token abc") }},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer not.a.jwt") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := Authenticate(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if called {
				t.Error("handler called despite invalid token")
			}
		})
	}
}

func TestAuthenticateRejectsTamperedToken(t *testing.T) {
	manager := newTestManager(t)
	other, err := session.NewManager("ffffffffffffffffffffffffffffffff", time.Hour)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	token, err := other.Issue("mallory")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	handler := Authenticate(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler called with token signed by wrong key")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
