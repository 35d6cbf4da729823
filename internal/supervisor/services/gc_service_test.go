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

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir()).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("badger.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestStoreGCServiceStopsOnCancel(t *testing.T) {
	db := openTestDB(t)
	svc := NewStoreGCService(db, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}

func TestStoreGCServiceRunOnceNoRewrite(t *testing.T) {
	db := openTestDB(t)
	svc := NewStoreGCService(db, time.Hour, zerolog.Nop())

	// A fresh store has nothing to reclaim; runOnce must terminate
	// rather than loop on ErrNoRewrite.
	svc.runOnce()
}

func TestStoreGCServiceDefaultsInterval(t *testing.T) {
	db := openTestDB(t)
	svc := NewStoreGCService(db, 0, zerolog.Nop())
	if svc.interval != 10*time.Minute {
		t.Fatalf("interval = %v, want 10m default", svc.interval)
	}
}

func TestStoreGCServiceString(t *testing.T) {
	db := openTestDB(t)
	svc := NewStoreGCService(db, time.Minute, zerolog.Nop())
	if got := svc.String(); got != "store-gc" {
		t.Fatalf("String() = %q, want %q", got, "store-gc")
	}
}
