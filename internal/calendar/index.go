// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

// Package calendar buckets an event snapshot by calendar day for
// calendar-view lookups. The index is a pure transform over its input:
// building it never touches the repository and never fails.
//
// Day keys are ISO YYYY-MM-DD strings truncated in UTC. Clients in other
// zones see day boundaries at UTC midnight; the policy is fixed here so
// two devices always agree on which bucket an event lands in.
package calendar

import (
	"sort"

	"github.com/tomtom215/conventus/internal/models"
)

// Bucket is one calendar day's events, in original snapshot order.
// Selected is presentation state for at most one externally chosen day;
// it is layered onto the index, not derived from it.
type Bucket struct {
	Date     string         `json:"date"`
	Events   []models.Event `json:"events"`
	Selected bool           `json:"selected,omitempty"`
}

// Index maps ISO day strings to their buckets.
type Index struct {
	buckets map[string]*Bucket
	order   []string
}

// Build groups events by the UTC calendar day of their date field,
// preserving relative input order within each bucket. Events with no date
// are skipped entirely.
func Build(events []models.Event) *Index {
	idx := &Index{buckets: make(map[string]*Bucket)}
	for _, event := range events {
		if event.Date.IsZero() {
			continue
		}
		key := event.Date.DayKey()
		bucket, ok := idx.buckets[key]
		if !ok {
			bucket = &Bucket{Date: key}
			idx.buckets[key] = bucket
			idx.order = append(idx.order, key)
		}
		bucket.Events = append(bucket.Events, event)
	}
	return idx
}

// ForDate returns the events on the given ISO day. A day with no bucket
// yields an empty list, never an error.
func (i *Index) ForDate(date string) []models.Event {
	if bucket, ok := i.buckets[date]; ok {
		return bucket.Events
	}
	return []models.Event{}
}

// Days returns the bucketed day keys in ascending date order.
func (i *Index) Days() []string {
	days := make([]string, len(i.order))
	copy(days, i.order)
	sort.Strings(days)
	return days
}

// Len returns the number of buckets.
func (i *Index) Len() int {
	return len(i.buckets)
}

// Select marks the given day as selected, creating an empty bucket for it
// if none exists, and clears any previous selection. Exactly one day is
// selected afterwards.
func (i *Index) Select(date string) {
	for _, bucket := range i.buckets {
		bucket.Selected = false
	}
	bucket, ok := i.buckets[date]
	if !ok {
		bucket = &Bucket{Date: date, Events: []models.Event{}}
		i.buckets[date] = bucket
		i.order = append(i.order, date)
	}
	bucket.Selected = true
}

// Buckets returns all buckets in ascending date order. Used by the HTTP
// boundary to serialize the whole index.
func (i *Index) Buckets() []Bucket {
	days := i.Days()
	out := make([]Bucket, 0, len(days))
	for _, day := range days {
		out = append(out, *i.buckets[day])
	}
	return out
}
