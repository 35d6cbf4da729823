// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package api

import (
	"net/http"
	"runtime"
	"time"
)

// sessionRequest is the body for POST /session.
type sessionRequest struct {
	UserID string `json:"userId" validate:"required,max=128"`
}

// CreateSession handles POST /session: mints a bearer token for the
// given user ID. Identity verification happens upstream of this service;
// this endpoint is the trust boundary stub that turns an identity into a
// session token.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	token, err := h.sessions.Issue(req.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "SESSION_ERROR", "Failed to issue session token", err)
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]string{
		"token":  token,
		"userId": req.UserID,
	})
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	// A repository probe distinguishes "process up" from "store usable".
	status := "ok"
	code := http.StatusOK
	if _, err := h.repo.List(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	respondSuccess(w, code, map[string]interface{}{
		"status":         status,
		"version":        h.version,
		"go_version":     runtime.Version(),
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"watch_clients":  h.hub.ClientCount(),
	})
}
