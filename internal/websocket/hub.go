// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package websocket

import (
	"context"
	"sync"

	"github.com/tomtom215/conventus/internal/logging"
	"github.com/tomtom215/conventus/internal/metrics"
	"github.com/tomtom215/conventus/internal/models"
	"github.com/tomtom215/conventus/internal/repository"
)

// Message types sent to clients.
const (
	MessageTypeEvents = "events"
	MessageTypePing   = "ping"
	MessageTypePong   = "pong"
)

// Message is the wire envelope for hub-to-client traffic.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains the set of active clients and broadcasts event snapshots
// to them.
type Hub struct {
	repo repository.EventRepository

	clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex

	// last holds the most recent snapshot, delivered to clients on connect.
	last   []models.Event
	lastMu sync.RWMutex
}

// NewHub creates a hub backed by the repository's watch channel.
func NewHub(repo repository.EventRepository) *Hub {
	return &Hub{
		repo:       repo,
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// RunWithContext subscribes to the repository watch channel and serves
// clients until the context is canceled. Designed to run under suture
// supervision; cancellation closes every client and returns ctx.Err().
func (h *Hub) RunWithContext(ctx context.Context) error {
	snapshots, cancel := h.repo.Watch(ctx)
	defer cancel()

	for {
		// Lifecycle events take priority over snapshot delivery so client
		// state is settled before the next broadcast.
		select {
		case client := <-h.Register:
			h.register(client)
			continue
		case client := <-h.Unregister:
			h.unregister(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()

		case client := <-h.Register:
			h.register(client)

		case client := <-h.Unregister:
			h.unregister(client)

		case snapshot, ok := <-snapshots:
			if !ok {
				h.shutdown(ctx)
				return ctx.Err()
			}
			h.lastMu.Lock()
			h.last = snapshot
			h.lastMu.Unlock()
			h.broadcast(Message{Type: MessageTypeEvents, Data: snapshot})
		}
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.TrackWatchConnection(true)

	// New clients get the current snapshot immediately.
	h.lastMu.RLock()
	snapshot := h.last
	h.lastMu.RUnlock()
	if snapshot != nil {
		client.deliver(Message{Type: MessageTypeEvents, Data: snapshot})
	}

	logging.Info().Int("total_clients", total).Msg("watch client connected")
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	total := len(h.clients)
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		total = len(h.clients)
		metrics.TrackWatchConnection(false)
	}
	h.mu.Unlock()
	logging.Info().Int("total_clients", total).Msg("watch client disconnected")
}

// broadcast delivers the message to every client. A client whose buffer
// is full has its stale message replaced, never queued behind it.
func (h *Hub) broadcast(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		client.deliver(msg)
		metrics.WatchSnapshotsSent.Inc()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) shutdown(ctx context.Context) {
	h.mu.Lock()
	count := len(h.clients)
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
		metrics.TrackWatchConnection(false)
	}
	h.mu.Unlock()

	reason := "context_canceled"
	if ctx.Err() == context.DeadlineExceeded {
		reason = "context_deadline"
	}
	logging.Info().
		Str("component", "watch-hub").
		Str("reason", reason).
		Int("clients_closed", count).
		Msg("watch hub shut down")
}
