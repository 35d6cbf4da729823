// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/conventus/internal/calendar"
	"github.com/tomtom215/conventus/internal/logging"
	"github.com/tomtom215/conventus/internal/models"
	"github.com/tomtom215/conventus/internal/repository"
	"github.com/tomtom215/conventus/internal/session"
	ws "github.com/tomtom215/conventus/internal/websocket"
)

// respondRepoError maps repository sentinels to HTTP status codes.
func respondRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Event not found", nil)
	case errors.Is(err, repository.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Event store is unavailable", err)
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error", err)
	}
}

// ListEvents handles GET /api/v1/events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.repo.List(r.Context())
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, events)
}

// GetEvent handles GET /api/v1/events/{id}.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, event)
}

// CreateEvent handles POST /api/v1/events. The authenticated user becomes
// the owner regardless of any ownerId in the body.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	var event models.Event
	if !decodeBody(w, r, &event) {
		return
	}
	event.OwnerID = sess.UserID

	if apiErr := validateRequest(&event); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	id, err := h.repo.Create(r.Context(), &event)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("event_id", id).
		Str("owner_id", sess.UserID).
		Msg("event created")
	respondSuccess(w, http.StatusCreated, event)
}

// UpdateEvent handles PATCH /api/v1/events/{id}. Only the owner may
// update an event.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	event, err := h.repo.Get(r.Context(), id)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	if event.OwnerID != sess.UserID {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "Only the owner may update this event", nil)
		return
	}

	var patch models.EventPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	patched := *event
	patch.Apply(&patched)
	if apiErr := validateRequest(&patched); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if err := h.repo.Update(r.Context(), id, patch); err != nil {
		respondRepoError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, patched)
}

// DeleteEvent handles DELETE /api/v1/events/{id}. Only the owner may
// delete an event. Engagement records referencing it are left behind.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	event, err := h.repo.Get(r.Context(), id)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	if event.OwnerID != sess.UserID {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "Only the owner may delete this event", nil)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		respondRepoError(w, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("event_id", id).
		Str("owner_id", sess.UserID).
		Msg("event deleted")
	respondSuccess(w, http.StatusOK, map[string]string{"id": id})
}

// Calendar handles GET /api/v1/calendar. The full snapshot is bucketed by
// UTC day; an optional selected query parameter marks one day.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	events, err := h.repo.List(r.Context())
	if err != nil {
		respondRepoError(w, err)
		return
	}

	idx := calendar.Build(events)
	if selected := r.URL.Query().Get("selected"); selected != "" {
		idx.Select(selected)
	}
	respondSuccess(w, http.StatusOK, idx.Buckets())
}

// WatchEvents handles GET /api/v1/events/watch: upgrades to WebSocket and
// registers the connection with the snapshot hub.
func (h *Handler) WatchEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register <- client
	client.Start()
}
