// Package jsonstore persists todo items to a single JSON file.
//
// One file, human-readable, portable. No locking; a local single-user
// CLI reads or rewrites the whole file within one operation.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/acampagne/todo/internal/model"
)

// Store owns the collection persisted at one file path. Mutating
// operations write the full collection back on success and leave the
// file untouched on failure.
type Store struct {
	path string
}

// New returns a store bound to path. The file is not touched until the
// first operation.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

// Load reads the collection in insertion order. A missing file is an
// empty collection; malformed JSON or an invalid record is a
// *StorageError.
func (s *Store) Load() ([]model.Item, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Item{}, nil
		}
		return nil, &StorageError{Path: s.path, Op: "read", Err: err}
	}
	var recs []model.Record
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, &StorageError{Path: s.path, Op: "parse", Err: err}
	}
	items := make([]model.Item, 0, len(recs))
	for i, rec := range recs {
		item, err := model.FromRecord(rec)
		if err != nil {
			return nil, &StorageError{Path: s.path, Op: "parse", Err: fmt.Errorf("record %d: %w", i, err)}
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Store) save(items []model.Item) error {
	recs := make([]model.Record, 0, len(items))
	for _, it := range items {
		recs = append(recs, it.ToRecord())
	}
	b, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return &StorageError{Path: s.path, Op: "marshal", Err: err}
	}
	b = append(b, '\n')

	// Write a sibling temp file and rename it over the target, so a
	// failed write leaves the previous contents intact.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	return nil
}

// Add validates the input, assigns the next id, appends and persists.
func (s *Store) Add(title, description string) (model.Item, error) {
	items, err := s.Load()
	if err != nil {
		return model.Item{}, err
	}
	item, err := model.New(title, description)
	if err != nil {
		return model.Item{}, err
	}
	item.ID = nextID(items)
	items = append(items, item)
	if err := s.save(items); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// nextID is max(existing ids)+1, or 1 for an empty collection.
func nextID(items []model.Item) int {
	next := 1
	for _, it := range items {
		if it.ID >= next {
			next = it.ID + 1
		}
	}
	return next
}

// List returns items in insertion order. A nil filter returns all of
// them, otherwise only those whose completion state matches.
func (s *Store) List(completed *bool) ([]model.Item, error) {
	items, err := s.Load()
	if err != nil {
		return nil, err
	}
	if completed == nil {
		return items, nil
	}
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if it.Completed == *completed {
			out = append(out, it)
		}
	}
	return out, nil
}

// Complete marks the item done. Completing an already-done item keeps
// its original completion time; the collection is persisted either way.
func (s *Store) Complete(id int) (model.Item, error) {
	now := time.Now()
	return s.update(id, func(it model.Item) model.Item { return it.Complete(now) })
}

// Uncomplete marks the item pending again and clears its completion
// time.
func (s *Store) Uncomplete(id int) (model.Item, error) {
	return s.update(id, model.Item.Uncomplete)
}

func (s *Store) update(id int, fn func(model.Item) model.Item) (model.Item, error) {
	items, err := s.Load()
	if err != nil {
		return model.Item{}, err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return model.Item{}, &NotFoundError{ID: id}
	}
	items[idx] = fn(items[idx])
	if err := s.save(items); err != nil {
		return model.Item{}, err
	}
	return items[idx], nil
}

// Delete removes the item and returns it.
func (s *Store) Delete(id int) (model.Item, error) {
	items, err := s.Load()
	if err != nil {
		return model.Item{}, err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return model.Item{}, &NotFoundError{ID: id}
	}
	removed := items[idx]
	items = append(items[:idx], items[idx+1:]...)
	if err := s.save(items); err != nil {
		return model.Item{}, err
	}
	return removed, nil
}

// ClearCompleted removes every done item and reports how many were
// removed. Nothing is written when there was nothing to remove.
func (s *Store) ClearCompleted() (int, error) {
	items, err := s.Load()
	if err != nil {
		return 0, err
	}
	kept := make([]model.Item, 0, len(items))
	for _, it := range items {
		if !it.Completed {
			kept = append(kept, it)
		}
	}
	removed := len(items) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.save(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// Stats summarizes the collection without writing anything.
type Stats struct {
	Total     int
	Completed int
	Pending   int
}

// Stats counts items by completion state.
func (s *Store) Stats() (Stats, error) {
	items, err := s.Load()
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Total: len(items)}
	for _, it := range items {
		if it.Completed {
			st.Completed++
		} else {
			st.Pending++
		}
	}
	return st, nil
}

// Rewrite replaces the whole collection. The interactive list edits in
// memory and persists once on quit through this.
func (s *Store) Rewrite(items []model.Item) error {
	return s.save(items)
}

func indexOf(items []model.Item, id int) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
