// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

// Package repository defines the EventRepository interface consumed by the
// ledgers, the calendar index, and the recommendation engine, together with
// two implementations:
//
//   - Badger: a BadgerDB-backed document store. Events, favorites records,
//     and RSVP records are stored as JSON documents under typed key
//     prefixes. A snapshot hub pushes the full event list to Watch
//     subscribers after every mutation.
//   - Memory: a map-backed store for tests.
//
// WithBreaker decorates any EventRepository with a circuit breaker; calls
// rejected by an open circuit surface as ErrUnavailable, the same sentinel
// returned for any other store failure, so callers never branch on breaker
// internals.
//
// Consistency model: single-document last-writer-wins. No compare-and-swap
// or transaction spans a caller's read-then-write sequence; the ledgers
// document the resulting races on their own methods.
package repository
