// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package repository

import (
	"context"
	"errors"

	"github.com/tomtom215/conventus/internal/models"
)

// Sentinel errors returned by every EventRepository implementation.
var (
	// ErrNotFound indicates the referenced event or record does not exist.
	ErrNotFound = errors.New("repository: not found")

	// ErrUnavailable indicates the underlying store call failed or was
	// rejected. Transient; callers may retry.
	ErrUnavailable = errors.New("repository: unavailable")
)

// EventRepository is the abstract document store behind the engagement
// engine. Implementations provide last-writer-wins semantics at document
// granularity; nothing stronger is assumed by callers.
type EventRepository interface {
	// List returns all events ordered by creation time, newest first.
	List(ctx context.Context) ([]models.Event, error)

	// Watch returns a channel that receives the full event snapshot after
	// every mutation, plus a cancel function that releases the
	// subscription. The current snapshot is delivered immediately.
	Watch(ctx context.Context) (<-chan []models.Event, func())

	// Get returns the event with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*models.Event, error)

	// Create stores a new event, assigning its ID and CreatedAt.
	// Returns the assigned ID.
	Create(ctx context.Context, event *models.Event) (string, error)

	// Update applies a partial update to an existing event.
	// Returns ErrNotFound if the event does not exist.
	Update(ctx context.Context, id string, patch models.EventPatch) error

	// Delete removes an event. Favorites and RSVP records referencing it
	// are left in place; orphaned references are tolerated.
	Delete(ctx context.Context, id string) error

	// Favorites returns the user's favorites record, or ErrNotFound if the
	// user has never favorited anything.
	Favorites(ctx context.Context, userID string) (*models.FavoritesRecord, error)

	// PutFavorites overwrites the user's favorites record wholesale.
	PutFavorites(ctx context.Context, userID string, record *models.FavoritesRecord) error

	// RSVPs returns all RSVP records for the user.
	RSVPs(ctx context.Context, userID string) ([]models.RSVPRecord, error)

	// PutRSVP upserts the (userID, eventID) RSVP record.
	PutRSVP(ctx context.Context, userID, eventID string, status models.RSVPStatus) error
}
