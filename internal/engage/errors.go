// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package engage

import "errors"

// Ledger errors surfaced to callers.
var (
	// ErrEventNotFound indicates the referenced event does not exist,
	// typically because it was deleted concurrently.
	ErrEventNotFound = errors.New("engage: event not found")

	// ErrRepositoryUnavailable indicates the underlying store call failed.
	// Callers may retry; the ledgers never retry internally.
	ErrRepositoryUnavailable = errors.New("engage: repository unavailable")
)
