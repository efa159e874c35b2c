package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/nhaldane/taskticker/internal/domain"
)

// NoteStore defines the interface for note persistence.
// Version: 1.0
//
// Unlike tasks, notes are accessed individually as often as in bulk, so
// the contract carries both the whole-collection operations the engine's
// persistence collaborator requires and keyed operations for the notes
// service.
type NoteStore interface {
	// Load retrieves all notes.
	// A store with no persisted data returns an empty slice, not an error.
	Load(ctx context.Context) ([]*domain.Note, error)

	// Save persists the full note collection, replacing whatever was
	// stored before.
	Save(ctx context.Context, notes []*domain.Note) error

	// Get retrieves a note by its unique ID.
	// Returns ErrNoteNotFound if the note does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.Note, error)

	// Put inserts or replaces a note keyed by its ID.
	// Returns validation errors if the note data is invalid.
	Put(ctx context.Context, note *domain.Note) error

	// Delete removes a note from the store by its ID.
	// Returns ErrNoteNotFound if the note does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetByTask retrieves all notes linked to the given task, oldest
	// first. Returns an empty slice if the task has no notes.
	GetByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.Note, error)
}
