// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package engage

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/conventus/internal/models"
	"github.com/tomtom215/conventus/internal/repository"
	"github.com/tomtom215/conventus/internal/session"
)

// RSVPLedger maintains per-(user, event) attendance records and the
// denormalized attendee list on each event document.
type RSVPLedger struct {
	repo   repository.EventRepository
	logger zerolog.Logger
}

// NewRSVPLedger creates an RSVP ledger over the given repository.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRSVPLedger(repo repository.EventRepository, logger zerolog.Logger) *RSVPLedger {
	return &RSVPLedger{
		repo:   repo,
		logger: logger.With().Str("component", "rsvp").Logger(),
	}
}

// RSVP records the user's attendance for an event, then appends the user
// to the event's attendee list if not already present. Re-RSVPing is
// idempotent: the record is overwritten and the attendee entry is never
// duplicated.
//
// Capacity is deliberately NOT enforced here. MaxAttendees is a display
// gate owned by presentation code; the ledger accepts RSVPs past capacity.
//
// If the event is deleted between the record write and the attendee
// append, the RSVP record remains (orphans are tolerated) and the call
// fails with ErrEventNotFound so the caller knows the event is gone.
func (l *RSVPLedger) RSVP(ctx context.Context, sess session.Session, eventID string, status models.RSVPStatus) error {
	userID, err := session.UserID(sess)
	if err != nil {
		return err
	}
	if status == "" {
		status = models.RSVPAttending
	}

	if err := l.repo.PutRSVP(ctx, userID, eventID, status); err != nil {
		return fmt.Errorf("write rsvp: %w", errors.Join(ErrRepositoryUnavailable, err))
	}

	event, err := l.repo.Get(ctx, eventID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("rsvp target %s: %w", eventID, ErrEventNotFound)
	}
	if err != nil {
		return fmt.Errorf("read event: %w", errors.Join(ErrRepositoryUnavailable, err))
	}

	if event.HasAttendee(userID) {
		return nil
	}

	attendees := append(append([]string{}, event.Attendees...), userID)
	err = l.repo.Update(ctx, eventID, models.EventPatch{Attendees: attendees})
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("rsvp target %s: %w", eventID, ErrEventNotFound)
	}
	if err != nil {
		return fmt.Errorf("append attendee: %w", errors.Join(ErrRepositoryUnavailable, err))
	}

	l.logger.Debug().
		Str("user_id", userID).
		Str("event_id", eventID).
		Int("attendees", len(attendees)).
		Msg("rsvp recorded")
	return nil
}

// UserRSVPs returns all RSVP records for the session's user.
func (l *RSVPLedger) UserRSVPs(ctx context.Context, sess session.Session) ([]models.RSVPRecord, error) {
	userID, err := session.UserID(sess)
	if err != nil {
		return nil, err
	}

	records, err := l.repo.RSVPs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read rsvps: %w", errors.Join(ErrRepositoryUnavailable, err))
	}
	if records == nil {
		records = []models.RSVPRecord{}
	}
	return records, nil
}
