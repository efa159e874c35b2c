package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/nhaldane/taskticker/internal/domain"
	"github.com/nhaldane/taskticker/internal/platform/logger"
	"github.com/nhaldane/taskticker/internal/store"
)

// JSONNoteStore implements the store.NoteStore interface over a notes.json
// document in a data directory. Keyed operations are read-modify-write over
// the whole document; the collection is small enough that this stays cheap.
type JSONNoteStore struct {
	dir    string
	mu     sync.Mutex
	logger *slog.Logger
}

// NewJSONNoteStore creates a new JSONNoteStore rooted at dir. The directory
// is created on first save. If logger is nil, a default logger is used.
func NewJSONNoteStore(dir string, logger *slog.Logger) *JSONNoteStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONNoteStore{
		dir:    dir,
		logger: logger.With(slog.String("component", "note_store")),
	}
}

// Verify JSONNoteStore implements store.NoteStore interface (compile-time check)
var _ store.NoteStore = (*JSONNoteStore)(nil)

// Load implements store.NoteStore.Load.
// A missing file yields an empty collection. A document that is malformed
// or fails schema validation yields a StoreError wrapping
// store.ErrInvalidEntity.
func (s *JSONNoteStore) Load(ctx context.Context) ([]*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Save implements store.NoteStore.Save.
// It validates every note before replacing the stored collection.
func (s *JSONNoteStore) Save(ctx context.Context, notes []*domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, note := range notes {
		if err := note.Validate(); err != nil {
			log.Warn("note validation failed during save",
				slog.String("note_id", note.ID.String()),
				slog.String("error", err.Error()))
			return store.NewStoreError("note", "save", "invalid note", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, notes)
}

// Get implements store.NoteStore.Get.
func (s *JSONNoteStore) Get(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}

	for _, note := range notes {
		if note.ID == id {
			return note, nil
		}
	}

	log.Debug("note not found", slog.String("note_id", id.String()))
	return nil, store.ErrNoteNotFound
}

// Put implements store.NoteStore.Put.
// The note replaces an existing entry with the same id or is appended to
// the end of the collection.
func (s *JSONNoteStore) Put(ctx context.Context, note *domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := note.Validate(); err != nil {
		log.Warn("note validation failed during put",
			slog.String("error", err.Error()))
		return store.NewStoreError("note", "put", "invalid note", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range notes {
		if existing.ID == note.ID {
			notes[i] = note
			replaced = true
			break
		}
	}
	if !replaced {
		notes = append(notes, note)
	}

	return s.saveLocked(ctx, notes)
}

// Delete implements store.NoteStore.Delete.
func (s *JSONNoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}

	kept := make([]*domain.Note, 0, len(notes))
	found := false
	for _, note := range notes {
		if note.ID == id {
			found = true
			continue
		}
		kept = append(kept, note)
	}

	if !found {
		log.Debug("note not found", slog.String("note_id", id.String()))
		return store.ErrNoteNotFound
	}

	return s.saveLocked(ctx, kept)
}

// GetByTask implements store.NoteStore.GetByTask.
// Notes come back in document order, which is insertion order, so the
// oldest note for the task is first.
func (s *JSONNoteStore) GetByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}

	matched := []*domain.Note{}
	for _, note := range notes {
		if note.TaskID == taskID {
			matched = append(matched, note)
		}
	}

	return matched, nil
}

// loadLocked reads, validates, and decodes notes.json. Callers must hold
// s.mu.
func (s *JSONNoteStore) loadLocked(ctx context.Context) ([]*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	path := filepath.Join(s.dir, notesFileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("note file does not exist, starting with empty collection",
				slog.String("path", path))
			return []*domain.Note{}, nil
		}
		log.Error("failed to read note file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("note", "load", "failed to read file", err)
	}

	if err := validateDocument(noteSchema, raw); err != nil {
		log.Warn("note file failed validation",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("note", "load", err.Error(), store.ErrInvalidEntity)
	}

	notes := []*domain.Note{}
	if err := json.Unmarshal(raw, &notes); err != nil {
		return nil, store.NewStoreError("note", "load", err.Error(), store.ErrInvalidEntity)
	}

	return notes, nil
}

// saveLocked writes the note collection to notes.json. Callers must hold
// s.mu.
func (s *JSONNoteStore) saveLocked(ctx context.Context, notes []*domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return store.NewStoreError("note", "save", "failed to create data directory", err)
	}

	if notes == nil {
		notes = []*domain.Note{}
	}

	path := filepath.Join(s.dir, notesFileName)
	if err := writeJSONFile(path, notes); err != nil {
		log.Error("failed to write note file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return store.NewStoreError("note", "save", "failed to write file", err)
	}

	log.Debug("saved note collection", slog.Int("count", len(notes)))
	return nil
}
