// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

// Package services wraps the long-running parts of the process as
// suture services: the HTTP server, the watch hub, and the Badger
// value-log garbage collector.
package services
