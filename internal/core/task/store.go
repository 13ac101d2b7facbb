package task

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidArgument is returned for malformed user input such as an empty description.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrRead is returned when the persisted collection cannot be read or decoded.
	ErrRead = errors.New("read tasks")
	// ErrCorrupt is returned when the file was read but its contents could not
	// be decoded. It matches ErrRead.
	ErrCorrupt = fmt.Errorf("%w: corrupt task file", ErrRead)
	// ErrWrite is returned when the collection cannot be written back.
	ErrWrite = errors.New("write tasks")
)

// Store defines the interface for whole-collection task persistence.
type Store interface {
	// LoadAll returns every persisted task in stored order.
	// A missing or empty file yields an empty slice and no error.
	// Returns an error wrapping ErrRead if the file exists but cannot be read,
	// and ErrCorrupt if it was read but cannot be decoded.
	LoadAll(ctx context.Context) ([]Task, error)

	// SaveAll replaces the persisted collection with tasks.
	// Returns an error wrapping ErrWrite on failure.
	SaveAll(ctx context.Context, tasks []Task) error
}

// NextID returns max(existing ids) + 1, or 1 for an empty collection.
func NextID(tasks []Task) int {
	next := 1
	for _, t := range tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}
