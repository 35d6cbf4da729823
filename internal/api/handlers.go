// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/conventus/internal/engage"
	"github.com/tomtom215/conventus/internal/recommend"
	"github.com/tomtom215/conventus/internal/repository"
	"github.com/tomtom215/conventus/internal/session"
	ws "github.com/tomtom215/conventus/internal/websocket"
)

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	repo      repository.EventRepository
	favorites *engage.FavoritesLedger
	rsvps     *engage.RSVPLedger
	engine    *recommend.Engine
	sessions  *session.Manager
	hub       *ws.Hub

	startTime time.Time
	version   string

	upgrader websocket.Upgrader
}

// NewHandler wires the handler dependencies.
func NewHandler(
	repo repository.EventRepository,
	favorites *engage.FavoritesLedger,
	rsvps *engage.RSVPLedger,
	engine *recommend.Engine,
	sessions *session.Manager,
	hub *ws.Hub,
	version string,
) *Handler {
	return &Handler{
		repo:      repo,
		favorites: favorites,
		rsvps:     rsvps,
		engine:    engine,
		sessions:  sessions,
		hub:       hub,
		startTime: time.Now(),
		version:   version,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Auth happens in middleware before the upgrade; origin checks
			// are delegated to the CORS policy at the router.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}
