// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package models

import (
	"slices"
	"time"
)

// CategoryGeneral is the default event category.
const CategoryGeneral = "General"

// Categories is the fixed set of event categories.
var Categories = []string{
	CategoryGeneral,
	"Conference",
	"Workshop",
	"Meetup",
	"Social",
	"Sports",
	"Music",
	"Food",
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c string) bool {
	return slices.Contains(Categories, c)
}

// Event is a user-created calendar item. The repository assigns ID and
// CreatedAt on creation; everything else comes from the owner.
//
// Attendees is stored as a sequence but treated as a set: the RSVP ledger
// never appends a duplicate entry. MaxAttendees of zero means unlimited.
// Date and Time are tracked as independent instants (date-only and
// time-only semantics) and combined only for validation.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required,max=2000"`
	Location    string   `json:"location" validate:"required,max=500"`
	Category    string   `json:"category" validate:"omitempty,eventcategory"`
	Date        Instant  `json:"date,omitempty"`
	Time        Instant  `json:"time,omitempty"`
	OwnerID     string   `json:"ownerId" validate:"required"`
	Attendees   []string `json:"attendees"`
	MaxAttendees int     `json:"maxAttendees,omitempty" validate:"min=0"`
	CreatedAt   Instant  `json:"createdAt"`
}

// HasAttendee reports whether userID is already on the attendee list.
func (e *Event) HasAttendee(userID string) bool {
	return slices.Contains(e.Attendees, userID)
}

// StartsAt combines the event's date and time into a single instant.
// The date contributes the calendar day, the time contributes the clock
// time, both interpreted in UTC. Returns the zero time when either part
// is absent.
func (e *Event) StartsAt() time.Time {
	if e.Date.IsZero() || e.Time.IsZero() {
		return time.Time{}
	}
	d := e.Date.Time()
	t := e.Time.Time()
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// EventPatch is a partial update applied to an existing event. Nil fields
// are left untouched. Attendees is replaced wholesale when non-nil, which
// is how the RSVP ledger persists its idempotent append.
type EventPatch struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Date         *Instant `json:"date,omitempty"`
	Time         *Instant `json:"time,omitempty"`
	Attendees    []string `json:"attendees,omitempty"`
	MaxAttendees *int     `json:"maxAttendees,omitempty"`
}

// Apply copies the patch's non-nil fields onto the event.
func (p *EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Attendees != nil {
		e.Attendees = p.Attendees
	}
	if p.MaxAttendees != nil {
		e.MaxAttendees = *p.MaxAttendees
	}
}
