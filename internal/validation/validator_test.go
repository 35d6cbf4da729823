// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/conventus/internal/models"
)

func TestGetValidatorSingleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() returned nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestValidateStructEvent(t *testing.T) {
	valid := models.Event{
		Title:       "Go Meetup",
		Description: "Monthly Go meetup",
		Location:    "Community Hall",
		Category:    "Meetup",
		OwnerID:     "user-1",
	}

	tests := []struct {
		name      string
		mutate    func(*models.Event)
		wantErr   bool
		wantField string
	}{
		{"valid event", func(*models.Event) {}, false, ""},
		{"missing title", func(e *models.Event) { e.Title = "" }, true, "Title"},
		{"missing description", func(e *models.Event) { e.Description = "" }, true, "Description"},
		{"missing location", func(e *models.Event) { e.Location = "" }, true, "Location"},
		{"missing owner", func(e *models.Event) { e.OwnerID = "" }, true, "OwnerID"},
		{"unknown category", func(e *models.Event) { e.Category = "Rave" }, true, "Category"},
		{"empty category allowed", func(e *models.Event) { e.Category = "" }, false, ""},
		{"title too long", func(e *models.Event) { e.Title = strings.Repeat("x", 201) }, true, "Title"},
		{"negative max attendees", func(e *models.Event) { e.MaxAttendees = -1 }, true, "MaxAttendees"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := valid
			tt.mutate(&event)

			err := ValidateStruct(&event)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}

			found := false
			for _, fe := range err.Errors() {
				if fe.Field() == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %s, got %v", tt.wantField, err)
			}
		})
	}
}

func TestEventCategoryValidatorAcceptsAllCategories(t *testing.T) {
	for _, category := range models.Categories {
		event := models.Event{
			Title:       "t",
			Description: "d",
			Location:    "l",
			Category:    category,
			OwnerID:     "u",
		}
		if err := ValidateStruct(&event); err != nil {
			t.Errorf("category %q rejected: %v", category, err)
		}
	}
}

func TestToAPIErrorSingleField(t *testing.T) {
	event := models.Event{Description: "d", Location: "l", OwnerID: "u"}

	err := ValidateStruct(&event)
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %s, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "Title is required" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Title is required")
	}
	if apiErr.Details["field"] != "Title" {
		t.Errorf("Details[field] = %v, want Title", apiErr.Details["field"])
	}
}

func TestToAPIErrorMultipleFields(t *testing.T) {
	event := models.Event{}

	err := ValidateStruct(&event)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) < 2 {
		t.Fatalf("expected multiple field errors, got %d", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %s, want VALIDATION_ERROR", apiErr.Code)
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("multi-error Details missing fields list")
	}
	if !strings.Contains(apiErr.Message, ";") {
		t.Errorf("multi-error Message should join fields: %q", apiErr.Message)
	}
}

func TestErrorMessageTranslation(t *testing.T) {
	type request struct {
		Count int    `validate:"min=1,max=100"`
		Name  string `validate:"max=5"`
	}

	err := ValidateStruct(&request{Count: 0, Name: "toolongname"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := err.Error()
	if !strings.Contains(msg, "Count must be at least 1") {
		t.Errorf("numeric min message missing: %q", msg)
	}
	if !strings.Contains(msg, "Name must be at most 5 characters") {
		t.Errorf("string max message missing: %q", msg)
	}
}
