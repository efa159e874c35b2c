package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/nhaldane/taskticker/internal/domain"
	"github.com/nhaldane/taskticker/internal/platform/logger"
	"github.com/nhaldane/taskticker/internal/store"
)

// MemoryNoteStore implements the store.NoteStore interface with an
// in-memory map guarded by a mutex. Like MemoryTaskStore it preserves
// insertion order for Load and GetByTask.
type MemoryNoteStore struct {
	mu     sync.RWMutex
	notes  map[uuid.UUID]*domain.Note
	order  []uuid.UUID
	logger *slog.Logger
}

// NewMemoryNoteStore creates an empty in-memory note store.
// If logger is nil, a default logger will be used.
func NewMemoryNoteStore(logger *slog.Logger) *MemoryNoteStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoryNoteStore{
		notes:  make(map[uuid.UUID]*domain.Note),
		logger: logger.With(slog.String("component", "note_store")),
	}
}

// Ensure MemoryNoteStore implements store.NoteStore interface
var _ store.NoteStore = (*MemoryNoteStore)(nil)

// Load implements store.NoteStore.Load
func (s *MemoryNoteStore) Load(ctx context.Context) ([]*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]*domain.Note, 0, len(s.order))
	for _, id := range s.order {
		notes = append(notes, s.notes[id])
	}
	return notes, nil
}

// Save implements store.NoteStore.Save
// It replaces the stored collection with the given notes.
func (s *MemoryNoteStore) Save(ctx context.Context, notes []*domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, note := range notes {
		if err := note.Validate(); err != nil {
			log.Warn("note validation failed during save",
				slog.String("error", err.Error()),
				slog.String("note_id", note.ID.String()))
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = make(map[uuid.UUID]*domain.Note, len(notes))
	s.order = s.order[:0]
	for _, note := range notes {
		if _, exists := s.notes[note.ID]; !exists {
			s.order = append(s.order, note.ID)
		}
		s.notes[note.ID] = note
	}

	log.Debug("saved note collection", slog.Int("note_count", len(notes)))
	return nil
}

// Get implements store.NoteStore.Get
// Returns store.ErrNoteNotFound if the note does not exist.
func (s *MemoryNoteStore) Get(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return nil, store.ErrNoteNotFound
	}
	return note, nil
}

// Put implements store.NoteStore.Put
// It inserts or replaces the note keyed by its ID.
func (s *MemoryNoteStore) Put(ctx context.Context, note *domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := note.Validate(); err != nil {
		log.Warn("note validation failed during put",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.notes[note.ID]; !exists {
		s.order = append(s.order, note.ID)
	}
	s.notes[note.ID] = note
	return nil
}

// Delete implements store.NoteStore.Delete
// Returns store.ErrNoteNotFound if the note does not exist.
func (s *MemoryNoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return store.ErrNoteNotFound
	}

	delete(s.notes, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// GetByTask implements store.NoteStore.GetByTask
// It returns all notes linked to the task, oldest first.
func (s *MemoryNoteStore) GetByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var linked []*domain.Note
	for _, id := range s.order {
		if note := s.notes[id]; note.TaskID == taskID {
			linked = append(linked, note)
		}
	}
	return linked, nil
}
