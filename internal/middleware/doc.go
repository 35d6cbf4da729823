// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

// Package middleware provides chi-compatible HTTP middleware:
//
//   - RequestID: per-request tracing IDs, honored from upstream proxies
//   - PrometheusMetrics: request counters, latency histograms, in-flight gauge
//   - Authenticate: session token verification populating the request context
//
// Cross-cutting concerns that chi ships natively (CORS, rate limiting,
// compression, panic recovery) are composed directly on the router rather
// than duplicated here.
package middleware
