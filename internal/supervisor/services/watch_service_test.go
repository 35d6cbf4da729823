// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeHub struct {
	err error
}

func (f *fakeHub) RunWithContext(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestWatchHubServicePropagatesError(t *testing.T) {
	want := errors.New("watch stream closed")
	svc := NewWatchHubService(&fakeHub{err: want})

	if err := svc.Serve(context.Background()); !errors.Is(err, want) {
		t.Fatalf("Serve() = %v, want %v", err, want)
	}
}

func TestWatchHubServiceStopsOnCancel(t *testing.T) {
	svc := NewWatchHubService(&fakeHub{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}

func TestWatchHubServiceString(t *testing.T) {
	svc := NewWatchHubService(&fakeHub{})
	if got := svc.String(); got != "watch-hub" {
		t.Fatalf("String() = %q, want %q", got, "watch-hub")
	}
}
