// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package models

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Instant is a single calendar instant stored in a document.
//
// Document stores written by older clients carry timestamps in three wire
// forms: an RFC3339 string, a unix epoch in milliseconds, or a wrapped
// object with "seconds" and "nanos" fields. Instant normalizes all three at
// the unmarshalling boundary so nothing downstream branches on
// representation. It marshals back as RFC3339 in UTC.
//
// The zero Instant means "absent"; callers check IsZero before using it.
type Instant struct {
	t time.Time
}

// NewInstant wraps a time.Time as an Instant, normalized to UTC.
func NewInstant(t time.Time) Instant {
	return Instant{t: t.UTC()}
}

// Time returns the underlying time in UTC.
func (i Instant) Time() time.Time {
	return i.t
}

// IsZero reports whether the instant is absent.
func (i Instant) IsZero() bool {
	return i.t.IsZero()
}

// DayKey returns the ISO calendar-day string (YYYY-MM-DD) for the instant.
// Truncation is always performed in UTC.
func (i Instant) DayKey() string {
	return i.t.UTC().Format("2006-01-02")
}

// instantWrapper is the {seconds,nanos} wire form.
type instantWrapper struct {
	Seconds int64 `json:"seconds"`
	Nanos   int64 `json:"nanos"`
}

// MarshalJSON encodes the instant as an RFC3339 string in UTC.
// The zero instant encodes as null.
func (i Instant) MarshalJSON() ([]byte, error) {
	if i.t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(i.t.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON decodes any of the three supported wire forms.
func (i *Instant) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		i.t = time.Time{}
		return nil
	}

	switch data[0] {
	case '"':
		// RFC3339 string
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode instant string: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("parse instant string %q: %w", s, err)
		}
		i.t = parsed.UTC()
		return nil

	case '{':
		// {seconds,nanos} wrapper
		var w instantWrapper
		if err := json.Unmarshal(data, &w); err != nil {
			return fmt.Errorf("decode instant wrapper: %w", err)
		}
		i.t = time.Unix(w.Seconds, w.Nanos).UTC()
		return nil

	default:
		// unix epoch milliseconds
		var ms int64
		if err := json.Unmarshal(data, &ms); err != nil {
			return fmt.Errorf("decode instant millis: %w", err)
		}
		i.t = time.UnixMilli(ms).UTC()
		return nil
	}
}
