// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package websocket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/conventus/internal/models"
	"github.com/tomtom215/conventus/internal/repository"
)

func testClient(hub *Hub) *Client {
	// No underlying connection; these tests exercise hub-side delivery
	// through the send channel only.
	return &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, 1)}
}

func awaitMessage(t *testing.T, client *Client) Message {
	t.Helper()
	select {
	case msg, ok := <-client.send:
		if !ok {
			t.Fatal("send channel closed while awaiting message")
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func TestHubBroadcastsSnapshotsOnMutation(t *testing.T) {
	repo := repository.NewMemory()
	hub := NewHub(repo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- hub.RunWithContext(ctx) }()

	client := testClient(hub)
	hub.Register <- client

	// Initial snapshot (empty store) arrives on connect or shortly after.
	first := awaitMessage(t, client)
	if first.Type != MessageTypeEvents {
		t.Fatalf("message type = %s, want %s", first.Type, MessageTypeEvents)
	}

	if _, err := repo.Create(ctx, &models.Event{Title: "t", Description: "d", Location: "l", OwnerID: "u"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		var snapshot []models.Event
		select {
		case msg := <-client.send:
			var ok bool
			snapshot, ok = msg.Data.([]models.Event)
			if !ok {
				t.Fatalf("unexpected data type %T", msg.Data)
			}
		case <-deadline:
			t.Fatal("timed out waiting for post-mutation snapshot")
		}
		if len(snapshot) == 1 {
			break
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("RunWithContext() = %v, want context.Canceled", err)
	}
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	repo := repository.NewMemory()
	hub := NewHub(repo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = hub.RunWithContext(ctx) }()

	client := testClient(hub)
	hub.Register <- client
	hub.Unregister <- client

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-client.send:
			if !ok {
				if hub.ClientCount() != 0 {
					t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
				}
				return
			}
		case <-deadline:
			t.Fatal("send channel not closed after unregister")
		}
	}
}

func TestHubShutdownClosesAllClients(t *testing.T) {
	repo := repository.NewMemory()
	hub := NewHub(repo)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.RunWithContext(ctx) }()

	clients := []*Client{testClient(hub), testClient(hub)}
	for _, c := range clients {
		hub.Register <- c
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("RunWithContext() = %v, want context.Canceled", err)
	}

	for i, c := range clients {
		deadline := time.After(2 * time.Second)
		for closed := false; !closed; {
			select {
			case _, ok := <-c.send:
				closed = !ok
			case <-deadline:
				t.Fatalf("client %d send channel not closed after shutdown", i)
			}
		}
	}
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}
}

func TestDeliverReplacesStaleSnapshot(t *testing.T) {
	client := testClient(nil)

	client.deliver(Message{Type: MessageTypeEvents, Data: "stale"})
	client.deliver(Message{Type: MessageTypeEvents, Data: "fresh"})

	msg := <-client.send
	if msg.Data != "fresh" {
		t.Errorf("delivered data = %v, want fresh (stale replaced)", msg.Data)
	}
	select {
	case extra := <-client.send:
		t.Errorf("unexpected queued message: %v", extra)
	default:
	}
}
