// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/conventus/internal/metrics"
	"github.com/tomtom215/conventus/internal/models"
)

// Key prefixes for BadgerDB storage.
const (
	eventKeyPrefix     = "event:"
	favoritesKeyPrefix = "favorites:"
	rsvpKeyPrefix      = "rsvp:"
)

// Badger implements EventRepository on top of BadgerDB. Documents are
// stored as JSON values under typed key prefixes:
//
//	event:{eventID}
//	favorites:{userID}
//	rsvp:{userID}:{eventID}
//
// Safe for concurrent use. Write conflicts between concurrent transactions
// resolve last-writer-wins at document granularity.
type Badger struct {
	db     *badger.DB
	logger zerolog.Logger

	watchMu  sync.Mutex
	watchers map[uint64]chan []models.Event
	watchSeq uint64
}

// NewBadger creates a BadgerDB-backed repository over an opened database.
// The caller owns the database handle and closes it on shutdown.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBadger(db *badger.DB, logger zerolog.Logger) *Badger {
	return &Badger{
		db:       db,
		logger:   logger.With().Str("component", "repository").Logger(),
		watchers: make(map[uint64]chan []models.Event),
	}
}

// storeErr maps an unexpected badger failure to ErrUnavailable while
// keeping the underlying cause in the chain.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrUnavailable, err))
}

// List returns all events ordered by CreatedAt descending. Events that
// share a creation instant keep their key order, so repeated calls over an
// unchanged store return identical sequences.
func (s *Badger) List(ctx context.Context) ([]models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr("list events", err)
	}

	var events []models.Event
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(eventKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var event models.Event
				if uerr := json.Unmarshal(val, &event); uerr != nil {
					return fmt.Errorf("unmarshal event: %w", uerr)
				}
				events = append(events, event)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("list events", err)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.Time().After(events[j].CreatedAt.Time())
	})
	return events, nil
}

// Get returns the event with the given ID.
func (s *Badger) Get(ctx context.Context, id string) (*models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr("get event", err)
	}

	var event models.Event
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(eventKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &event)
		})
	})
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get event %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, storeErr("get event", err)
	}
	return &event, nil
}

// Create stores a new event. The repository assigns the ID and CreatedAt;
// an empty category defaults to General.
func (s *Badger) Create(ctx context.Context, event *models.Event) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", storeErr("create event", err)
	}

	event.ID = uuid.New().String()
	event.CreatedAt = models.NewInstant(time.Now())
	if event.Category == "" {
		event.Category = models.CategoryGeneral
	}
	if event.Attendees == nil {
		event.Attendees = []string{}
	}

	if err := s.putJSON(eventKeyPrefix+event.ID, event); err != nil {
		return "", storeErr("create event", err)
	}

	s.logger.Debug().Str("event_id", event.ID).Str("owner_id", event.OwnerID).Msg("event created")
	s.broadcast()
	return event.ID, nil
}

// Update applies a partial update to an existing event.
func (s *Badger) Update(ctx context.Context, id string, patch models.EventPatch) error {
	event, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	patch.Apply(event)
	if err := s.putJSON(eventKeyPrefix+id, event); err != nil {
		return storeErr("update event", err)
	}

	s.logger.Debug().Str("event_id", id).Msg("event updated")
	s.broadcast()
	return nil
}

// Delete removes an event. Favorites and RSVP records referencing the
// event are intentionally left behind.
func (s *Badger) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(eventKeyPrefix + id))
	})
	if err != nil {
		return storeErr("delete event", err)
	}

	s.logger.Debug().Str("event_id", id).Msg("event deleted")
	s.broadcast()
	return nil
}

// Favorites returns the user's favorites record.
func (s *Badger) Favorites(ctx context.Context, userID string) (*models.FavoritesRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr("get favorites", err)
	}

	var record models.FavoritesRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(favoritesKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("favorites for %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, storeErr("get favorites", err)
	}
	return &record, nil
}

// PutFavorites overwrites the user's favorites record.
func (s *Badger) PutFavorites(ctx context.Context, userID string, record *models.FavoritesRecord) error {
	if err := ctx.Err(); err != nil {
		return storeErr("put favorites", err)
	}
	if err := s.putJSON(favoritesKeyPrefix+userID, record); err != nil {
		return storeErr("put favorites", err)
	}
	return nil
}

// RSVPs returns all RSVP records for the user, ordered by eventID.
func (s *Badger) RSVPs(ctx context.Context, userID string) ([]models.RSVPRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr("list rsvps", err)
	}

	var records []models.RSVPRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(rsvpKeyPrefix + userID + ":")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var record models.RSVPRecord
				if uerr := json.Unmarshal(val, &record); uerr != nil {
					return fmt.Errorf("unmarshal rsvp: %w", uerr)
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("list rsvps", err)
	}
	return records, nil
}

// PutRSVP upserts the (userID, eventID) RSVP record. Re-RSVP overwrites
// the record in place, refreshing CreatedAt.
func (s *Badger) PutRSVP(ctx context.Context, userID, eventID string, status models.RSVPStatus) error {
	if err := ctx.Err(); err != nil {
		return storeErr("put rsvp", err)
	}

	record := models.RSVPRecord{
		UserID:    userID,
		EventID:   eventID,
		Status:    status,
		CreatedAt: models.NewInstant(time.Now()),
	}
	if err := s.putJSON(rsvpKeyPrefix+userID+":"+eventID, &record); err != nil {
		return storeErr("put rsvp", err)
	}
	return nil
}

// Watch subscribes to event snapshots. The current snapshot is delivered
// immediately; each subsequent mutation pushes a fresh one. Slow consumers
// only ever see the latest snapshot: pending values are replaced, never
// queued.
func (s *Badger) Watch(ctx context.Context) (<-chan []models.Event, func()) {
	ch := make(chan []models.Event, 1)

	s.watchMu.Lock()
	id := s.watchSeq
	s.watchSeq++
	s.watchers[id] = ch
	s.watchMu.Unlock()

	if snapshot, err := s.List(ctx); err == nil {
		select {
		case ch <- snapshot:
		default:
		}
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.watchMu.Lock()
			delete(s.watchers, id)
			s.watchMu.Unlock()
			close(ch)
		})
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, cancel
}

// broadcast pushes the current snapshot to every watcher.
func (s *Badger) broadcast() {
	snapshot, err := s.List(context.Background())
	if err != nil {
		s.logger.Warn().Err(err).Msg("snapshot for watchers failed")
		return
	}

	metrics.StoreEvents.Set(float64(len(snapshot)))

	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	for _, ch := range s.watchers {
		// Replace any undelivered snapshot with the fresh one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// putJSON marshals v and stores it under key in a single transaction.
func (s *Badger) putJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}
