// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package services

import (
	"context"
	"errors"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// defaultGCDiscardRatio reclaims a value-log file once half of it is
// stale, per the Badger documentation's recommendation.
const defaultGCDiscardRatio = 0.5

// StoreGCService periodically runs Badger's value-log garbage collector.
// Badger never runs GC on its own; without this loop the value log grows
// unbounded on long-lived deployments.
type StoreGCService struct {
	db       *badger.DB
	interval time.Duration
	logger   zerolog.Logger
}

// NewStoreGCService creates a GC loop over db running every interval.
func NewStoreGCService(db *badger.DB, interval time.Duration, logger zerolog.Logger) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		db:       db,
		interval: interval,
		logger:   logger.With().Str("component", "store-gc").Logger(),
	}
}

// Serve implements suture.Service. Each tick runs GC repeatedly until
// Badger reports nothing left to reclaim.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *StoreGCService) runOnce() {
	reclaimed := 0
	for {
		err := s.db.RunValueLogGC(defaultGCDiscardRatio)
		if err == nil {
			reclaimed++
			continue
		}
		if errors.Is(err, badger.ErrNoRewrite) {
			break
		}
		s.logger.Warn().Err(err).Msg("Value log GC failed")
		return
	}
	if reclaimed > 0 {
		s.logger.Debug().Int("files_reclaimed", reclaimed).Msg("Value log GC completed")
	}
}

// String identifies the service in supervisor logs.
func (s *StoreGCService) String() string {
	return "store-gc"
}
