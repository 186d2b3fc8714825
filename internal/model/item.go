// Package model defines the todo item and its persisted record form.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Item is the domain model for a todo entry. The ID is zero until the
// store assigns one.
type Item struct {
	ID          int
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// New validates the title and returns a pending item stamped with the
// current time.
func New(title, description string) (Item, error) {
	if strings.TrimSpace(title) == "" {
		return Item{}, &ValidationError{Field: "title", Err: fmt.Errorf("cannot be empty")}
	}
	return Item{
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}, nil
}

// Complete returns the item marked done at now. An item that is already
// done keeps its original completion time.
func (i Item) Complete(now time.Time) Item {
	if i.Completed {
		return i
	}
	i.Completed = true
	i.CompletedAt = &now
	return i
}

// Uncomplete returns the item marked pending again.
func (i Item) Uncomplete() Item {
	i.Completed = false
	i.CompletedAt = nil
	return i
}

// ValidationError reports malformed input to the model: an empty title,
// or a record whose shape does not describe a valid item.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }
