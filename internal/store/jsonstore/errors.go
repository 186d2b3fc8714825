package jsonstore

import "fmt"

// NotFoundError reports an operation that referenced an id not present
// in the collection. No state changed.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no item with id %d", e.ID)
}

// StorageError reports that the backing file could not be read, parsed
// or written.
type StorageError struct {
	Path string
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
