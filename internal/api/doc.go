// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

// Package api provides the HTTP boundary: a chi router exposing event
// CRUD, the calendar view, engagement operations (favorites, RSVPs),
// recommendations, and a WebSocket watch endpoint, all under /api/v1.
//
// Every response uses the models.APIResponse envelope. Authenticated
// routes require a bearer session token; the session travels by context
// into the ledgers and the recommendation engine.
package api
