// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package recommend

import (
	"context"
	"errors"

	"github.com/tomtom215/conventus/internal/models"
	"github.com/tomtom215/conventus/internal/repository"
)

// RepositoryProvider adapts an EventRepository to the DataProvider
// interface. A user with no favorites record is a user with zero
// favorites, not an error.
type RepositoryProvider struct {
	repo repository.EventRepository
}

// NewRepositoryProvider wraps a repository as a recommendation data source.
func NewRepositoryProvider(repo repository.EventRepository) *RepositoryProvider {
	return &RepositoryProvider{repo: repo}
}

// Events returns the full event snapshot.
func (p *RepositoryProvider) Events(ctx context.Context) ([]models.Event, error) {
	return p.repo.List(ctx)
}

// FavoriteEventIDs returns the user's favorite event IDs. A missing
// favorites record maps to an empty set.
func (p *RepositoryProvider) FavoriteEventIDs(ctx context.Context, userID string) ([]string, error) {
	record, err := p.repo.Favorites(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.EventIDs, nil
}

// RSVPs returns the user's RSVP history.
func (p *RepositoryProvider) RSVPs(ctx context.Context, userID string) ([]models.RSVPRecord, error) {
	return p.repo.RSVPs(ctx, userID)
}
