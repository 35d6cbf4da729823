// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

// Package engage implements the two engagement ledgers: per-user favorites
// and per-(user, event) RSVPs.
//
// # Concurrency model
//
// Both ledgers perform read-modify-write sequences against the repository
// with no optimistic concurrency control. Within one caller, operations on
// a record execute in program order; across callers (two devices toggling
// the same user's favorites, or an edit racing an RSVP on the same event's
// attendee list) the last write wins at document granularity and the loser's
// change is silently dropped. This is an accepted limitation of the target
// store, documented on each method, not a bug to patch here. Upgrading to
// an atomic set-add/remove primitive would be a behavioral change requiring
// a stronger store.
//
// # Error taxonomy
//
//   - session.ErrNotAuthenticated: no user in the supplied session
//   - ErrEventNotFound: the target event vanished mid-operation
//   - ErrRepositoryUnavailable: the underlying store call failed
//
// Ledger operations always propagate failures; nothing is swallowed into
// an empty default.
package engage
