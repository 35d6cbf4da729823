// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package models

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestInstantUnmarshalForms(t *testing.T) {
	want := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	tests := []struct {
		name string
		wire string
	}{
		{"rfc3339 string", `"2026-03-14T15:09:26Z"`},
		{"rfc3339 with offset", `"2026-03-14T17:09:26+02:00"`},
		{"epoch millis", `1773500966000`},
		{"seconds nanos wrapper", `{"seconds":1773500966,"nanos":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var i Instant
			if err := json.Unmarshal([]byte(tt.wire), &i); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.wire, err)
			}
			if !i.Time().Equal(want) {
				t.Errorf("got %v, want %v", i.Time(), want)
			}
		})
	}
}

func TestInstantUnmarshalNull(t *testing.T) {
	var i Instant
	if err := json.Unmarshal([]byte("null"), &i); err != nil {
		t.Fatalf("Unmarshal(null) error: %v", err)
	}
	if !i.IsZero() {
		t.Errorf("expected zero instant, got %v", i.Time())
	}
}

func TestInstantUnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name string
		wire string
	}{
		{"garbage string", `"not-a-date"`},
		{"bool", `true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var i Instant
			if err := json.Unmarshal([]byte(tt.wire), &i); err == nil {
				t.Errorf("expected error for %s", tt.wire)
			}
		})
	}
}

func TestInstantRoundTrip(t *testing.T) {
	orig := NewInstant(time.Date(2026, 7, 4, 18, 30, 0, 0, time.UTC))

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var decoded Instant
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !decoded.Time().Equal(orig.Time()) {
		t.Errorf("round trip changed value: got %v, want %v", decoded.Time(), orig.Time())
	}
}

func TestInstantMarshalZeroIsNull(t *testing.T) {
	data, err := json.Marshal(Instant{})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("zero instant marshals as %s, want null", data)
	}
}

func TestInstantDayKeyUTC(t *testing.T) {
	// 23:30 UTC-5 on March 14 is already March 15 in UTC; the day key
	// must follow UTC, not the original offset.
	loc := time.FixedZone("EST", -5*3600)
	i := NewInstant(time.Date(2026, 3, 14, 23, 30, 0, 0, loc))
	if got := i.DayKey(); got != "2026-03-15" {
		t.Errorf("DayKey() = %q, want %q", got, "2026-03-15")
	}
}
