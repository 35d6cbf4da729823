// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

// Package models defines the domain types shared across Conventus: events,
// per-user favorites records, RSVP records, and the Instant timestamp type
// that normalizes the wire representations the document store can emit.
//
// Types here carry JSON tags for document storage and API responses, and
// validate tags consumed by the validation package. They hold no behavior
// beyond representation concerns, so every other package can depend on
// models without import cycles.
package models
