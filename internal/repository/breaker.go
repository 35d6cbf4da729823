// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/conventus/internal/logging"
	"github.com/tomtom215/conventus/internal/metrics"
	"github.com/tomtom215/conventus/internal/models"
)

// BreakerRepository decorates an EventRepository with a circuit breaker.
// When the underlying store fails repeatedly the circuit opens and calls
// are rejected immediately with ErrUnavailable instead of piling up
// against a dead store.
//
// ErrNotFound does not count as a failure: an absent document is a healthy
// store answering correctly.
type BreakerRepository struct {
	inner EventRepository
	cb    *gobreaker.CircuitBreaker[interface{}]
}

// WithBreaker wraps repo with a circuit breaker.
// The circuit opens after a 60% failure rate over at least 10 requests and
// retries after 30 seconds.
func WithBreaker(repo EventRepository) *BreakerRepository {
	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        "event-repository",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})
	return &BreakerRepository{inner: repo, cb: cb}
}

// execute runs fn through the breaker, mapping rejections to ErrUnavailable.
// Every repository operation passes through here, so this is also where
// store operation metrics are recorded.
func (b *BreakerRepository) execute(op string, fn func() (interface{}, error)) (interface{}, error) {
	start := time.Now()
	result, err := b.cb.Execute(fn)
	metrics.RecordStoreOperation(op, time.Since(start), errorType(err))
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%s: %w", op, errors.Join(ErrUnavailable, err))
	}
	return result, err
}

func errorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "unavailable"
	}
}

// List implements EventRepository.
func (b *BreakerRepository) List(ctx context.Context) ([]models.Event, error) {
	result, err := b.execute("list events", func() (interface{}, error) {
		return b.inner.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Event), nil
}

// Watch implements EventRepository. Subscriptions bypass the breaker; the
// snapshot push already degrades to silence when the store is down.
func (b *BreakerRepository) Watch(ctx context.Context) (<-chan []models.Event, func()) {
	return b.inner.Watch(ctx)
}

// Get implements EventRepository.
func (b *BreakerRepository) Get(ctx context.Context, id string) (*models.Event, error) {
	result, err := b.execute("get event", func() (interface{}, error) {
		return b.inner.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Event), nil
}

// Create implements EventRepository.
func (b *BreakerRepository) Create(ctx context.Context, event *models.Event) (string, error) {
	result, err := b.execute("create event", func() (interface{}, error) {
		return b.inner.Create(ctx, event)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// Update implements EventRepository.
func (b *BreakerRepository) Update(ctx context.Context, id string, patch models.EventPatch) error {
	_, err := b.execute("update event", func() (interface{}, error) {
		return nil, b.inner.Update(ctx, id, patch)
	})
	return err
}

// Delete implements EventRepository.
func (b *BreakerRepository) Delete(ctx context.Context, id string) error {
	_, err := b.execute("delete event", func() (interface{}, error) {
		return nil, b.inner.Delete(ctx, id)
	})
	return err
}

// Favorites implements EventRepository.
func (b *BreakerRepository) Favorites(ctx context.Context, userID string) (*models.FavoritesRecord, error) {
	result, err := b.execute("get favorites", func() (interface{}, error) {
		return b.inner.Favorites(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.FavoritesRecord), nil
}

// PutFavorites implements EventRepository.
func (b *BreakerRepository) PutFavorites(ctx context.Context, userID string, record *models.FavoritesRecord) error {
	_, err := b.execute("put favorites", func() (interface{}, error) {
		return nil, b.inner.PutFavorites(ctx, userID, record)
	})
	return err
}

// RSVPs implements EventRepository.
func (b *BreakerRepository) RSVPs(ctx context.Context, userID string) ([]models.RSVPRecord, error) {
	result, err := b.execute("list rsvps", func() (interface{}, error) {
		return b.inner.RSVPs(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.RSVPRecord), nil
}

// PutRSVP implements EventRepository.
func (b *BreakerRepository) PutRSVP(ctx context.Context, userID, eventID string, status models.RSVPStatus) error {
	_, err := b.execute("put rsvp", func() (interface{}, error) {
		return nil, b.inner.PutRSVP(ctx, userID, eventID, status)
	})
	return err
}
