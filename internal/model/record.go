package model

import (
	"fmt"
	"strings"
	"time"
)

// Record is the wire form of an Item as stored in the JSON file. Field
// names and casing are the compatibility contract; completed_at is null
// while the item is pending.
type Record struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at"`
}

// Timestamps are written with a zone offset. Files written by older
// tools carry zoneless local times, so those parse too.
const (
	timeLayout     = time.RFC3339Nano
	bareTimeLayout = "2006-01-02T15:04:05.999999999"
)

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(bareTimeLayout, s, time.Local)
}

// ToRecord converts the item to its serializable form.
func (i Item) ToRecord() Record {
	r := Record{
		ID:          i.ID,
		Title:       i.Title,
		Description: i.Description,
		Completed:   i.Completed,
		CreatedAt:   i.CreatedAt.Format(timeLayout),
	}
	if i.CompletedAt != nil {
		s := i.CompletedAt.Format(timeLayout)
		r.CompletedAt = &s
	}
	return r
}

// FromRecord is the inverse of ToRecord. Records read from disk are
// rejected here when their shape does not describe a valid item, rather
// than trusted.
func FromRecord(r Record) (Item, error) {
	if r.ID < 1 {
		return Item{}, &ValidationError{Field: "id", Err: fmt.Errorf("must be a positive integer, got %d", r.ID)}
	}
	if strings.TrimSpace(r.Title) == "" {
		return Item{}, &ValidationError{Field: "title", Err: fmt.Errorf("cannot be empty")}
	}
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return Item{}, &ValidationError{Field: "created_at", Err: err}
	}
	if r.Completed != (r.CompletedAt != nil) {
		return Item{}, &ValidationError{Field: "completed_at", Err: fmt.Errorf("must be set exactly when completed is true")}
	}
	item := Item{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		CreatedAt:   created,
	}
	if r.CompletedAt != nil {
		completed, err := parseTime(*r.CompletedAt)
		if err != nil {
			return Item{}, &ValidationError{Field: "completed_at", Err: err}
		}
		item.CompletedAt = &completed
	}
	return item, nil
}
