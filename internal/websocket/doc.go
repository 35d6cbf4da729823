// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

// Package websocket fans event snapshots out to connected clients over
// WebSocket. The Hub subscribes to the repository's watch channel and
// broadcasts every snapshot to all clients; a slow client's pending
// snapshot is replaced by the newer one rather than queued, so clients
// always converge on the latest state.
//
// The Hub is run under supervision via RunWithContext; cancellation
// closes every client connection before returning.
package websocket
