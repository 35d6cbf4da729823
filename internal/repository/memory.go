// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/conventus/internal/models"
)

// Memory is a map-backed EventRepository for tests. It mirrors the Badger
// implementation's semantics (ID assignment, ordering, orphan tolerance,
// watch snapshots) without touching disk.
//
// FailNext, when set, makes every operation return ErrUnavailable; tests
// use it to exercise failure propagation.
type Memory struct {
	mu        sync.Mutex
	events    map[string]models.Event
	favorites map[string]models.FavoritesRecord
	rsvps     map[string]models.RSVPRecord // key: userID + ":" + eventID

	watchers map[uint64]chan []models.Event
	watchSeq uint64

	// FailNext forces every operation to fail until cleared.
	FailNext bool

	// now is overridable for deterministic CreatedAt ordering in tests.
	now func() time.Time
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		events:    make(map[string]models.Event),
		favorites: make(map[string]models.FavoritesRecord),
		rsvps:     make(map[string]models.RSVPRecord),
		watchers:  make(map[uint64]chan []models.Event),
		now:       time.Now,
	}
}

// SetClock replaces the time source used for assigned CreatedAt values.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *Memory) failing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FailNext
}

// List returns all events ordered by CreatedAt descending.
func (m *Memory) List(ctx context.Context) ([]models.Event, error) {
	if m.failing() {
		return nil, fmt.Errorf("list events: %w", ErrUnavailable)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked(), nil
}

// snapshotLocked builds the ordered event list (mu must be held).
func (m *Memory) snapshotLocked() []models.Event {
	events := make([]models.Event, 0, len(m.events))
	for _, e := range m.events {
		events = append(events, e)
	}
	sort.SliceStable(events, func(i, j int) bool {
		ti, tj := events[i].CreatedAt.Time(), events[j].CreatedAt.Time()
		if ti.Equal(tj) {
			return events[i].ID < events[j].ID
		}
		return ti.After(tj)
	})
	return events
}

// Get returns the event with the given ID.
func (m *Memory) Get(ctx context.Context, id string) (*models.Event, error) {
	if m.failing() {
		return nil, fmt.Errorf("get event: %w", ErrUnavailable)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return nil, fmt.Errorf("get event %s: %w", id, ErrNotFound)
	}
	return &event, nil
}

// Create stores a new event, assigning ID and CreatedAt.
func (m *Memory) Create(ctx context.Context, event *models.Event) (string, error) {
	if m.failing() {
		return "", fmt.Errorf("create event: %w", ErrUnavailable)
	}
	m.mu.Lock()
	event.ID = uuid.New().String()
	event.CreatedAt = models.NewInstant(m.now())
	if event.Category == "" {
		event.Category = models.CategoryGeneral
	}
	if event.Attendees == nil {
		event.Attendees = []string{}
	}
	m.events[event.ID] = *event
	m.mu.Unlock()

	m.broadcast()
	return event.ID, nil
}

// Seed inserts an event verbatim, keeping the caller's ID and CreatedAt.
// Test helper; not part of EventRepository.
func (m *Memory) Seed(event models.Event) {
	m.mu.Lock()
	m.events[event.ID] = event
	m.mu.Unlock()
}

// Update applies a partial update to an existing event.
func (m *Memory) Update(ctx context.Context, id string, patch models.EventPatch) error {
	if m.failing() {
		return fmt.Errorf("update event: %w", ErrUnavailable)
	}
	m.mu.Lock()
	event, ok := m.events[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("update event %s: %w", id, ErrNotFound)
	}
	patch.Apply(&event)
	m.events[id] = event
	m.mu.Unlock()

	m.broadcast()
	return nil
}

// Delete removes an event without cascading into engagement records.
func (m *Memory) Delete(ctx context.Context, id string) error {
	if m.failing() {
		return fmt.Errorf("delete event: %w", ErrUnavailable)
	}
	m.mu.Lock()
	if _, ok := m.events[id]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("delete event %s: %w", id, ErrNotFound)
	}
	delete(m.events, id)
	m.mu.Unlock()

	m.broadcast()
	return nil
}

// Favorites returns the user's favorites record.
func (m *Memory) Favorites(ctx context.Context, userID string) (*models.FavoritesRecord, error) {
	if m.failing() {
		return nil, fmt.Errorf("get favorites: %w", ErrUnavailable)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.favorites[userID]
	if !ok {
		return nil, fmt.Errorf("favorites for %s: %w", userID, ErrNotFound)
	}
	return &record, nil
}

// PutFavorites overwrites the user's favorites record.
func (m *Memory) PutFavorites(ctx context.Context, userID string, record *models.FavoritesRecord) error {
	if m.failing() {
		return fmt.Errorf("put favorites: %w", ErrUnavailable)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.favorites[userID] = *record
	return nil
}

// RSVPs returns all RSVP records for the user.
func (m *Memory) RSVPs(ctx context.Context, userID string) ([]models.RSVPRecord, error) {
	if m.failing() {
		return nil, fmt.Errorf("list rsvps: %w", ErrUnavailable)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var records []models.RSVPRecord
	for _, r := range m.rsvps {
		if r.UserID == userID {
			records = append(records, r)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].EventID < records[j].EventID
	})
	return records, nil
}

// PutRSVP upserts the (userID, eventID) RSVP record.
func (m *Memory) PutRSVP(ctx context.Context, userID, eventID string, status models.RSVPStatus) error {
	if m.failing() {
		return fmt.Errorf("put rsvp: %w", ErrUnavailable)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rsvps[userID+":"+eventID] = models.RSVPRecord{
		UserID:    userID,
		EventID:   eventID,
		Status:    status,
		CreatedAt: models.NewInstant(m.now()),
	}
	return nil
}

// Watch subscribes to event snapshots. Semantics match Badger.Watch.
func (m *Memory) Watch(ctx context.Context) (<-chan []models.Event, func()) {
	ch := make(chan []models.Event, 1)

	m.mu.Lock()
	id := m.watchSeq
	m.watchSeq++
	m.watchers[id] = ch
	ch <- m.snapshotLocked()
	m.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.watchers, id)
			m.mu.Unlock()
			close(ch)
		})
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, cancel
}

func (m *Memory) broadcast() {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := m.snapshotLocked()
	for _, ch := range m.watchers {
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
