package model

import (
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	item, err := New("Buy milk", "two bottles")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if item.Title != "Buy milk" {
		t.Errorf("Title: got %q, want %q", item.Title, "Buy milk")
	}
	if item.Description != "two bottles" {
		t.Errorf("Description: got %q, want %q", item.Description, "two bottles")
	}
	if item.Completed {
		t.Error("new item must be pending")
	}
	if item.CompletedAt != nil {
		t.Error("new item must have no completion time")
	}
	if item.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if item.ID != 0 {
		t.Errorf("ID: got %d, want 0 before store assignment", item.ID)
	}
}

func TestNewRejectsEmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := New(title, "")
		if err == nil {
			t.Errorf("New(%q) succeeded, want validation error", title)
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("New(%q): error type %T, want *ValidationError", title, err)
		}
	}
}

func TestCompleteAndUncomplete(t *testing.T) {
	item, err := New("Write report", "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	done := item.Complete(first)
	if !done.Completed {
		t.Fatal("Complete did not mark the item done")
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(first) {
		t.Fatalf("CompletedAt: got %v, want %v", done.CompletedAt, first)
	}

	// Completing again keeps the original timestamp.
	again := done.Complete(first.Add(time.Hour))
	if !again.CompletedAt.Equal(first) {
		t.Errorf("second Complete changed CompletedAt: got %v, want %v", again.CompletedAt, first)
	}

	pending := again.Uncomplete()
	if pending.Completed {
		t.Error("Uncomplete did not mark the item pending")
	}
	if pending.CompletedAt != nil {
		t.Error("Uncomplete did not clear CompletedAt")
	}
}
