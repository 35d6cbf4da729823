// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordStoreOperation(t *testing.T) {
	RecordStoreOperation("get", 5*time.Millisecond, "")
	if got := testutil.CollectAndCount(StoreOperationDuration); got < 1 {
		t.Errorf("store duration series count = %d, want >= 1", got)
	}

	errBefore := testutil.ToFloat64(StoreOperationErrors.WithLabelValues("get", "unavailable"))
	RecordStoreOperation("get", time.Millisecond, "unavailable")
	errAfter := testutil.ToFloat64(StoreOperationErrors.WithLabelValues("get", "unavailable"))
	if errAfter != errBefore+1 {
		t.Errorf("error counter = %f, want %f", errAfter, errBefore+1)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/events", "200"))
	RecordAPIRequest("GET", "/api/v1/events", "200", 10*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/events", "200"))
	if after != before+1 {
		t.Errorf("request counter = %f, want %f", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("active requests after inc = %f, want %f", got, base+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("active requests after dec = %f, want %f", got, base)
	}
}

func TestRecordFavoriteToggle(t *testing.T) {
	addedBefore := testutil.ToFloat64(FavoriteToggles.WithLabelValues("added"))
	removedBefore := testutil.ToFloat64(FavoriteToggles.WithLabelValues("removed"))

	RecordFavoriteToggle(true)
	RecordFavoriteToggle(false)

	if got := testutil.ToFloat64(FavoriteToggles.WithLabelValues("added")); got != addedBefore+1 {
		t.Errorf("added counter = %f, want %f", got, addedBefore+1)
	}
	if got := testutil.ToFloat64(FavoriteToggles.WithLabelValues("removed")); got != removedBefore+1 {
		t.Errorf("removed counter = %f, want %f", got, removedBefore+1)
	}
}

func TestRecordRecommendation(t *testing.T) {
	reqBefore := testutil.ToFloat64(RecommendationRequests)
	errBefore := testutil.ToFloat64(RecommendationErrors)

	RecordRecommendation(2*time.Millisecond, 5, nil)
	RecordRecommendation(time.Millisecond, 0, errors.New("store offline"))

	if got := testutil.ToFloat64(RecommendationRequests); got != reqBefore+2 {
		t.Errorf("request counter = %f, want %f", got, reqBefore+2)
	}
	if got := testutil.ToFloat64(RecommendationErrors); got != errBefore+1 {
		t.Errorf("error counter = %f, want %f", got, errBefore+1)
	}
}

func TestRecordCircuitBreakerTransition(t *testing.T) {
	RecordCircuitBreakerTransition("repository", "closed", "open")
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("repository")); got != 2 {
		t.Errorf("state gauge after open = %f, want 2", got)
	}

	RecordCircuitBreakerTransition("repository", "open", "half-open")
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("repository")); got != 1 {
		t.Errorf("state gauge after half-open = %f, want 1", got)
	}

	RecordCircuitBreakerTransition("repository", "half-open", "closed")
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("repository")); got != 0 {
		t.Errorf("state gauge after closed = %f, want 0", got)
	}
}

func TestTrackWatchConnection(t *testing.T) {
	base := testutil.ToFloat64(WatchConnections)

	TrackWatchConnection(true)
	TrackWatchConnection(true)
	TrackWatchConnection(false)

	if got := testutil.ToFloat64(WatchConnections); got != base+1 {
		t.Errorf("watch connections = %f, want %f", got, base+1)
	}
}
