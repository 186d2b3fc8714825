package model

import (
	"errors"
	"testing"
	"time"
)

func TestRecordRoundTrip(t *testing.T) {
	completedAt := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	items := []Item{
		{
			ID:          1,
			Title:       "Learn Go",
			Description: "read the spec",
			CreatedAt:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:          7,
			Title:       "Ship it",
			Completed:   true,
			CreatedAt:   time.Date(2024, 1, 1, 12, 0, 0, 123456789, time.UTC),
			CompletedAt: &completedAt,
		},
	}

	for _, want := range items {
		got, err := FromRecord(want.ToRecord())
		if err != nil {
			t.Fatalf("FromRecord(ToRecord(%q)) failed: %v", want.Title, err)
		}
		if got.ID != want.ID || got.Title != want.Title || got.Description != want.Description || got.Completed != want.Completed {
			t.Errorf("round trip changed fields: got %+v, want %+v", got, want)
		}
		if !got.CreatedAt.Equal(want.CreatedAt) {
			t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, want.CreatedAt)
		}
		switch {
		case (got.CompletedAt == nil) != (want.CompletedAt == nil):
			t.Errorf("CompletedAt presence: got %v, want %v", got.CompletedAt, want.CompletedAt)
		case got.CompletedAt != nil && !got.CompletedAt.Equal(*want.CompletedAt):
			t.Errorf("CompletedAt: got %v, want %v", got.CompletedAt, want.CompletedAt)
		}
	}
}

func TestFromRecordRejectsBadShapes(t *testing.T) {
	doneAt := "2024-01-02T09:30:00Z"
	valid := Record{
		ID:        1,
		Title:     "Learn Go",
		CreatedAt: "2024-01-01T12:00:00Z",
	}

	tests := []struct {
		name   string
		mutate func(*Record)
	}{
		{"zero id", func(r *Record) { r.ID = 0 }},
		{"negative id", func(r *Record) { r.ID = -3 }},
		{"empty title", func(r *Record) { r.Title = "" }},
		{"bad created_at", func(r *Record) { r.CreatedAt = "yesterday" }},
		{"completed without timestamp", func(r *Record) { r.Completed = true }},
		{"timestamp without completed", func(r *Record) { r.CompletedAt = &doneAt }},
		{"bad completed_at", func(r *Record) {
			bad := "noon"
			r.Completed = true
			r.CompletedAt = &bad
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			tt.mutate(&rec)
			_, err := FromRecord(rec)
			if err == nil {
				t.Fatal("FromRecord succeeded, want validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type %T, want *ValidationError", err)
			}
		})
	}
}

func TestFromRecordAcceptsZonelessTimestamps(t *testing.T) {
	// Files written by the original tool carry local times without a
	// zone offset.
	rec := Record{
		ID:        1,
		Title:     "Learn Python",
		CreatedAt: "2024-01-01T12:00:00",
	}
	item, err := FromRecord(rec)
	if err != nil {
		t.Fatalf("FromRecord failed: %v", err)
	}
	want := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	if !item.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt: got %v, want %v", item.CreatedAt, want)
	}

	rec.CreatedAt = "2024-01-01T12:00:00.500000"
	if _, err := FromRecord(rec); err != nil {
		t.Errorf("fractional zoneless timestamp rejected: %v", err)
	}
}
