// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/conventus/internal/models"
	"github.com/tomtom215/conventus/internal/session"
)

// ErrRecommendationUnavailable indicates a repository read failed at some
// stage of building recommendations. Callers treat an empty result as "no
// recommendations", never as this error.
var ErrRecommendationUnavailable = errors.New("recommend: unavailable")

// DataProvider supplies the three inputs of a recommendation. Typically
// backed by the repository; tests supply fixtures.
type DataProvider interface {
	// Events returns the full event snapshot, newest first.
	Events(ctx context.Context) ([]models.Event, error)

	// FavoriteEventIDs returns the user's favorite event IDs, empty when
	// the user has no favorites record.
	FavoriteEventIDs(ctx context.Context, userID string) ([]string, error)

	// RSVPs returns the user's RSVP history.
	RSVPs(ctx context.Context, userID string) ([]models.RSVPRecord, error)
}

// Engine produces personalized, deterministically ordered event
// recommendations. Safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	provider DataProvider

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// Metrics is a snapshot of engine counters.
type Metrics struct {
	Requests int64 `json:"requests"`
	Errors   int64 `json:"errors"`
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(provider DataProvider, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Engine{
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		provider: provider,
	}, nil
}

// scoredEvent pairs an event with its computed score during ranking.
type scoredEvent struct {
	event models.Event
	score float64
}

// Recommend returns up to MaxResults events ranked for the session's
// user. Events owned by the user are never included. Identical inputs
// always produce the identical ordered sequence.
func (e *Engine) Recommend(ctx context.Context, sess session.Session) ([]models.Event, error) {
	userID, err := session.UserID(sess)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	e.requestCount.Add(1)

	events, err := e.provider.Events(ctx)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("fetch events: %w", errors.Join(ErrRecommendationUnavailable, err))
	}

	favorites, err := e.provider.FavoriteEventIDs(ctx, userID)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("fetch favorites: %w", errors.Join(ErrRecommendationUnavailable, err))
	}

	// History is part of the engine's input surface but carries no score
	// weight yet; the fetch still participates in failure semantics.
	if _, err := e.provider.RSVPs(ctx, userID); err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("fetch rsvp history: %w", errors.Join(ErrRecommendationUnavailable, err))
	}

	favoriteSet := make(map[string]struct{}, len(favorites))
	for _, id := range favorites {
		favoriteSet[id] = struct{}{}
	}

	scored := make([]scoredEvent, 0, len(events))
	for _, event := range events {
		if event.OwnerID == userID {
			continue
		}
		score := float64(len(event.Attendees))
		if _, ok := favoriteSet[event.ID]; ok {
			score += e.config.FavoriteBoost
		}
		scored = append(scored, scoredEvent{event: event, score: score})
	}

	// Stable: ties keep the snapshot's newest-first order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	limit := e.config.MaxResults
	if len(scored) < limit {
		limit = len(scored)
	}
	results := make([]models.Event, 0, limit)
	for _, s := range scored[:limit] {
		results = append(results, s.event)
	}

	e.logger.Debug().
		Str("user_id", userID).
		Int("candidates", len(scored)).
		Int("returned", len(results)).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("recommendation complete")
	return results, nil
}

// Metrics returns a snapshot of engine counters.
func (e *Engine) Metrics() Metrics {
	return Metrics{
		Requests: e.requestCount.Load(),
		Errors:   e.errorCount.Load(),
	}
}
