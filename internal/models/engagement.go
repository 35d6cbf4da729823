// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package models

import "slices"

// RSVPStatus is an open enumeration of attendance commitments. Only
// "attending" is produced today; unknown values round-trip untouched so a
// future client can extend the set without a schema migration.
type RSVPStatus string

// RSVPAttending is the only status the current ledger writes.
const RSVPAttending RSVPStatus = "attending"

// FavoritesRecord is the per-user set of favorited event IDs. Exactly one
// record exists per user, created lazily on the first toggle. EventIDs is
// stored as a sequence but treated as a set with order irrelevant.
type FavoritesRecord struct {
	UserID    string   `json:"userId"`
	EventIDs  []string `json:"favorites"`
	UpdatedAt Instant  `json:"updatedAt"`
}

// Has reports whether eventID is in the favorites set.
func (f *FavoritesRecord) Has(eventID string) bool {
	return slices.Contains(f.EventIDs, eventID)
}

// RSVPRecord is a per-(user, event) attendance commitment. At most one
// record exists per pair; re-RSVP overwrites in place.
type RSVPRecord struct {
	UserID    string     `json:"userId"`
	EventID   string     `json:"eventId"`
	Status    RSVPStatus `json:"status"`
	CreatedAt Instant    `json:"createdAt"`
}
