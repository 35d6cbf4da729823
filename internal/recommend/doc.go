// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

// Package recommend implements the personalized event ranker.
//
// # Algorithm
//
// For a user, the engine fetches the full event snapshot, the user's
// favorites set, and the user's RSVP history, then:
//
//  1. Excludes every event the user owns.
//  2. Scores each remaining event: a fixed boost if the event is in the
//     user's favorites, plus its attendee count.
//  3. Sorts by score descending with a stable sort, so ties keep the
//     snapshot's newest-first order.
//  4. Truncates to the configured maximum (default 10).
//
// RSVP history is fetched but carries no weight in the score. That
// asymmetry is deliberate: history is reserved as a future signal and the
// fetch keeps the engine's data dependencies visible and testable today.
//
// # Determinism
//
// The ranking is a pure function of its three inputs. Stable sorting is a
// correctness requirement, not an optimization: the score alone does not
// fully order items, so an unstable sort would return different sequences
// for identical inputs.
//
// The engine depends on the DataProvider interface rather than the
// repository package directly, keeping it testable against fixtures.
package recommend
