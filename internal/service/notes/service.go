// Package notes manages the free-form notes that tasks link to, including
// the summary notes recorded automatically when a task completes.
package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nhaldane/taskticker/internal/domain"
	"github.com/nhaldane/taskticker/internal/platform/logger"
	"github.com/nhaldane/taskticker/internal/store"
)

// Service manages note records. Validation errors and store.ErrNoteNotFound
// pass through unwrapped so callers can match them with errors.Is.
type Service interface {
	// Create stores a new note. taskID links the note back to a task and
	// may be uuid.Nil for an unattached note.
	Create(ctx context.Context, content, label string, tags []string, taskID uuid.UUID) (*domain.Note, error)

	// Update replaces the note body, archiving the prior revision at the
	// end of the note's History and bumping UpdatedAt.
	Update(ctx context.Context, id uuid.UUID, content string) (*domain.Note, error)

	// Delete removes a note.
	Delete(ctx context.Context, id uuid.UUID) error

	// Get returns a single note by id.
	Get(ctx context.Context, id uuid.UUID) (*domain.Note, error)

	// GetByTask returns the notes linked to a task, oldest first.
	GetByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.Note, error)
}

// Verify interface compliance at compile time
var _ Service = (*noteServiceImpl)(nil)

// noteServiceImpl implements the Service interface.
type noteServiceImpl struct {
	noteStore store.NoteStore
	logger    *slog.Logger
}

// NewService creates a new notes Service backed by the given store.
func NewService(noteStore store.NoteStore, logger *slog.Logger) Service {
	if noteStore == nil {
		panic("noteStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &noteServiceImpl{
		noteStore: noteStore,
		logger:    logger.With(slog.String("component", "note_service")),
	}
}

// Create implements Service.Create.
func (s *noteServiceImpl) Create(
	ctx context.Context,
	content, label string,
	tags []string,
	taskID uuid.UUID,
) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	note, err := domain.NewNote(content, label, tags)
	if err != nil {
		log.Warn("rejected invalid note", slog.String("error", err.Error()))
		return nil, err
	}
	note.TaskID = taskID

	if err := s.noteStore.Put(ctx, note); err != nil {
		log.Error("failed to store note",
			slog.String("note_id", note.ID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to store note: %w", err)
	}

	log.Debug("created note",
		slog.String("note_id", note.ID.String()),
		slog.String("task_id", taskID.String()))
	return note, nil
}

// Update implements Service.Update.
func (s *noteServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	content string,
) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	note, err := s.noteStore.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			log.Debug("note not found", slog.String("note_id", id.String()))
			return nil, err
		}
		log.Error("failed to load note",
			slog.String("note_id", id.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load note: %w", err)
	}

	if err := note.UpdateContent(content); err != nil {
		log.Warn("rejected invalid note update",
			slog.String("note_id", id.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.noteStore.Put(ctx, note); err != nil {
		log.Error("failed to store note",
			slog.String("note_id", id.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to store note: %w", err)
	}

	log.Debug("updated note",
		slog.String("note_id", id.String()),
		slog.Int("revisions", len(note.History)))
	return note, nil
}

// Delete implements Service.Delete.
func (s *noteServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.noteStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			log.Debug("note not found", slog.String("note_id", id.String()))
			return err
		}
		log.Error("failed to delete note",
			slog.String("note_id", id.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	log.Debug("deleted note", slog.String("note_id", id.String()))
	return nil
}

// Get implements Service.Get.
func (s *noteServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	note, err := s.noteStore.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load note: %w", err)
	}
	return note, nil
}

// GetByTask implements Service.GetByTask.
func (s *noteServiceImpl) GetByTask(
	ctx context.Context,
	taskID uuid.UUID,
) ([]*domain.Note, error) {
	notes, err := s.noteStore.GetByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes for task: %w", err)
	}
	return notes, nil
}
