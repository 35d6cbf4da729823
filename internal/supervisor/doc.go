// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

// Package supervisor builds the suture supervision tree.
//
// The tree has two layers for failure isolation:
//
//   - messaging: the watch hub and the store maintenance loop. A crash
//     here restarts the hub without taking down the HTTP listener.
//   - api: the HTTP server.
//
// Supervisor events are logged through sutureslog into the process
// logger.
package supervisor
