// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package services

import "context"

// ContextHub is a hub whose run loop honors context cancellation.
// Satisfied by *websocket.Hub.
type ContextHub interface {
	RunWithContext(ctx context.Context) error
}

// WatchHubService runs the event watch hub under supervision.
type WatchHubService struct {
	hub ContextHub
}

// NewWatchHubService wraps hub for supervision.
func NewWatchHubService(hub ContextHub) *WatchHubService {
	return &WatchHubService{hub: hub}
}

// Serve implements suture.Service.
func (s *WatchHubService) Serve(ctx context.Context) error {
	return s.hub.RunWithContext(ctx)
}

// String identifies the service in supervisor logs.
func (s *WatchHubService) String() string {
	return "watch-hub"
}
