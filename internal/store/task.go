package store

import (
	"context"

	"github.com/nhaldane/taskticker/internal/domain"
)

// TaskStore defines the interface for task collection persistence.
// Version: 1.0
//
// The engine treats the task collection as a single document: it loads the
// whole list, mutates it in memory, and saves the whole list back. Keyed
// access, when a backend offers it, lives on the concrete type rather than
// on this interface.
type TaskStore interface {
	// Load retrieves the full task collection.
	// A store with no persisted data returns an empty slice, not an error.
	// Returns ErrInvalidEntity (wrapped) if persisted data fails validation.
	Load(ctx context.Context) ([]*domain.Task, error)

	// Save persists the full task collection, replacing whatever was
	// stored before. Implementations decide their own durability strategy
	// (backup files, sync writes); callers only see success or failure.
	Save(ctx context.Context, tasks []*domain.Task) error
}
