// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package engage

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/conventus/internal/repository"
	"github.com/tomtom215/conventus/internal/session"
)

func TestToggleAddsThenRemoves(t *testing.T) {
	mem := repository.NewMemory()
	ledger := NewFavoritesLedger(mem, zerolog.Nop())
	ctx := context.Background()
	sess := session.Session{UserID: "u1"}

	got, err := ledger.Toggle(ctx, sess, "e1")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !slices.Equal(got, []string{"e1"}) {
		t.Errorf("after first toggle = %v, want [e1]", got)
	}

	got, err = ledger.Toggle(ctx, sess, "e1")
	if err != nil {
		t.Fatalf("Toggle (second): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("after second toggle = %v, want empty (idempotent pair)", got)
	}
}

func TestToggleIsIdempotentPairOverManyEvents(t *testing.T) {
	mem := repository.NewMemory()
	ledger := NewFavoritesLedger(mem, zerolog.Nop())
	ctx := context.Background()
	sess := session.Session{UserID: "u1"}

	for _, e := range []string{"e1", "e2", "e3"} {
		if _, err := ledger.Toggle(ctx, sess, e); err != nil {
			t.Fatalf("Toggle(%s): %v", e, err)
		}
	}
	// Toggle e2 twice: set must return to {e1, e3}.
	for i := 0; i < 2; i++ {
		if _, err := ledger.Toggle(ctx, sess, "e2"); err != nil {
			t.Fatalf("Toggle(e2) #%d: %v", i+1, err)
		}
	}

	got, err := ledger.Favorites(ctx, sess)
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	if !slices.Equal(got, []string{"e1", "e3"}) {
		t.Errorf("Favorites = %v, want [e1 e3]", got)
	}
}

func TestToggleRequiresSession(t *testing.T) {
	ledger := NewFavoritesLedger(repository.NewMemory(), zerolog.Nop())

	_, err := ledger.Toggle(context.Background(), session.Session{}, "e1")
	if !errors.Is(err, session.ErrNotAuthenticated) {
		t.Errorf("Toggle without session = %v, want ErrNotAuthenticated", err)
	}
}

func TestFavoritesEmptyForNewUser(t *testing.T) {
	ledger := NewFavoritesLedger(repository.NewMemory(), zerolog.Nop())

	got, err := ledger.Favorites(context.Background(), session.Session{UserID: "fresh"})
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Favorites = %v, want empty non-nil list", got)
	}
}

func TestFavoritesPropagatesStoreFailure(t *testing.T) {
	mem := repository.NewMemory()
	mem.FailNext = true
	ledger := NewFavoritesLedger(mem, zerolog.Nop())

	_, err := ledger.Favorites(context.Background(), session.Session{UserID: "u1"})
	if !errors.Is(err, ErrRepositoryUnavailable) {
		t.Errorf("Favorites with failing store = %v, want ErrRepositoryUnavailable", err)
	}
}

func TestToggleScenarioRemovesExistingFavorite(t *testing.T) {
	// User favorites ["e1"]; toggling e1 then reading returns [].
	mem := repository.NewMemory()
	ledger := NewFavoritesLedger(mem, zerolog.Nop())
	ctx := context.Background()
	sess := session.Session{UserID: "u"}

	if _, err := ledger.Toggle(ctx, sess, "e1"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if _, err := ledger.Toggle(ctx, sess, "e1"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	got, err := ledger.Favorites(ctx, sess)
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Favorites = %v, want []", got)
	}
}
