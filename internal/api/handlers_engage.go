// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/conventus/internal/engage"
	"github.com/tomtom215/conventus/internal/metrics"
	"github.com/tomtom215/conventus/internal/models"
	"github.com/tomtom215/conventus/internal/recommend"
	"github.com/tomtom215/conventus/internal/session"
)

// respondEngageError maps ledger and session errors to HTTP status codes.
func respondEngageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Valid session required", nil)
	case errors.Is(err, engage.ErrEventNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Event not found", nil)
	case errors.Is(err, engage.ErrRepositoryUnavailable):
		respondError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Event store is unavailable", err)
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error", err)
	}
}

// rsvpRequest is the optional body for POST /events/{id}/rsvp.
type rsvpRequest struct {
	Status string `json:"status"`
}

// RSVP handles POST /api/v1/events/{id}/rsvp. The status defaults to
// attending when the body is absent or empty.
func (h *Handler) RSVP(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	eventID := chi.URLParam(r, "id")

	var req rsvpRequest
	if r.ContentLength > 0 {
		if !decodeBody(w, r, &req) {
			return
		}
	}

	status := models.RSVPStatus(req.Status)
	if status == "" {
		status = models.RSVPAttending
	}

	if err := h.rsvps.RSVP(r.Context(), sess, eventID, status); err != nil {
		respondEngageError(w, err)
		return
	}

	metrics.RecordRSVP(string(status))
	respondSuccess(w, http.StatusOK, map[string]string{"eventId": eventID})
}

// UserRSVPs handles GET /api/v1/rsvps.
func (h *Handler) UserRSVPs(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	records, err := h.rsvps.UserRSVPs(r.Context(), sess)
	if err != nil {
		respondEngageError(w, err)
		return
	}
	if records == nil {
		records = []models.RSVPRecord{}
	}
	respondSuccess(w, http.StatusOK, records)
}

// ToggleFavorite handles POST /api/v1/favorites/{eventID}/toggle and
// returns the updated favorites set.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	eventID := chi.URLParam(r, "eventID")

	favorites, err := h.favorites.Toggle(r.Context(), sess, eventID)
	if err != nil {
		respondEngageError(w, err)
		return
	}

	added := false
	for _, id := range favorites {
		if id == eventID {
			added = true
		}
	}
	metrics.RecordFavoriteToggle(added)
	respondSuccess(w, http.StatusOK, favorites)
}

// Favorites handles GET /api/v1/favorites.
func (h *Handler) Favorites(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	favorites, err := h.favorites.Favorites(r.Context(), sess)
	if err != nil {
		respondEngageError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, favorites)
}

// Recommendations handles GET /api/v1/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	start := time.Now()
	results, err := h.engine.Recommend(r.Context(), sess)
	metrics.RecordRecommendation(time.Since(start), len(results), err)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotAuthenticated):
			respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Valid session required", nil)
		case errors.Is(err, recommend.ErrRecommendationUnavailable):
			respondError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Recommendations are unavailable", err)
		default:
			respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error", err)
		}
		return
	}
	respondSuccess(w, http.StatusOK, results)
}
