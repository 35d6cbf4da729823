// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package engage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/conventus/internal/models"
	"github.com/tomtom215/conventus/internal/repository"
	"github.com/tomtom215/conventus/internal/session"
)

// FavoritesLedger maintains per-user favorite sets.
type FavoritesLedger struct {
	repo   repository.EventRepository
	logger zerolog.Logger
}

// NewFavoritesLedger creates a favorites ledger over the given repository.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFavoritesLedger(repo repository.EventRepository, logger zerolog.Logger) *FavoritesLedger {
	return &FavoritesLedger{
		repo:   repo,
		logger: logger.With().Str("component", "favorites").Logger(),
	}
}

// Toggle flips eventID's membership in the user's favorites set and
// returns the updated set. The record is created lazily on first use.
// Toggling twice with no concurrent writer restores the original set.
//
// The read-modify-write carries no concurrency control: two devices
// toggling concurrently race last-writer-wins on the whole set.
func (l *FavoritesLedger) Toggle(ctx context.Context, sess session.Session, eventID string) ([]string, error) {
	userID, err := session.UserID(sess)
	if err != nil {
		return nil, err
	}

	record, err := l.repo.Favorites(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		record = &models.FavoritesRecord{UserID: userID, EventIDs: []string{}}
	case err != nil:
		return nil, fmt.Errorf("read favorites: %w", errors.Join(ErrRepositoryUnavailable, err))
	}

	if idx := slices.Index(record.EventIDs, eventID); idx >= 0 {
		record.EventIDs = slices.Delete(record.EventIDs, idx, idx+1)
	} else {
		record.EventIDs = append(record.EventIDs, eventID)
	}
	record.UpdatedAt = models.NewInstant(time.Now())

	if err := l.repo.PutFavorites(ctx, userID, record); err != nil {
		return nil, fmt.Errorf("write favorites: %w", errors.Join(ErrRepositoryUnavailable, err))
	}

	l.logger.Debug().
		Str("user_id", userID).
		Str("event_id", eventID).
		Int("favorites", len(record.EventIDs)).
		Msg("favorite toggled")
	return record.EventIDs, nil
}

// Favorites returns the user's current favorite event IDs. A user with no
// record gets an empty list. Store failures propagate as
// ErrRepositoryUnavailable; they are never masked as an empty result.
func (l *FavoritesLedger) Favorites(ctx context.Context, sess session.Session) ([]string, error) {
	userID, err := session.UserID(sess)
	if err != nil {
		return nil, err
	}

	record, err := l.repo.Favorites(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read favorites: %w", errors.Join(ErrRepositoryUnavailable, err))
	}
	if record.EventIDs == nil {
		return []string{}, nil
	}
	return record.EventIDs, nil
}
