package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/nhaldane/taskticker/internal/domain"
	"github.com/nhaldane/taskticker/internal/platform/logger"
	"github.com/nhaldane/taskticker/internal/store"
)

// BadgerNoteStore implements the store.NoteStore interface on a shared
// BadgerDB handle, one record per note.
type BadgerNoteStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// NewBadgerNoteStore creates a new BadgerNoteStore with the given database
// handle and logger. If logger is nil, a default logger is used.
func NewBadgerNoteStore(db *badger.DB, logger *slog.Logger) *BadgerNoteStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &BadgerNoteStore{
		db:     db,
		logger: logger.With(slog.String("component", "note_store")),
	}
}

// Verify BadgerNoteStore implements store.NoteStore interface (compile-time check)
var _ store.NoteStore = (*BadgerNoteStore)(nil)

// Load implements store.NoteStore.Load.
// Records come back in key order.
func (s *BadgerNoteStore) Load(ctx context.Context) ([]*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	notes := []*domain.Note{}
	prefix := []byte(noteKeyPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(val []byte) error {
				var note domain.Note
				if err := json.Unmarshal(val, &note); err != nil {
					return fmt.Errorf("%w: record %s: %v", store.ErrInvalidEntity, key, err)
				}
				notes = append(notes, &note)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			log.Warn("note record failed to decode", slog.String("error", err.Error()))
			return nil, store.NewStoreError("note", "load", "invalid note record", err)
		}
		log.Error("failed to read note collection", slog.String("error", err.Error()))
		return nil, store.NewStoreError("note", "load", "failed to read database", err)
	}

	log.Debug("loaded note collection", slog.Int("count", len(notes)))
	return notes, nil
}

// Save implements store.NoteStore.Save.
// The incoming collection replaces every stored note record in a single
// transaction.
func (s *BadgerNoteStore) Save(ctx context.Context, notes []*domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, note := range notes {
		if err := note.Validate(); err != nil {
			log.Warn("note validation failed during save",
				slog.String("note_id", note.ID.String()),
				slog.String("error", err.Error()))
			return store.NewStoreError("note", "save", "invalid note", err)
		}
	}

	prefix := []byte(noteKeyPrefix)
	err := s.db.Update(func(txn *badger.Txn) error {
		keep := make(map[string]struct{}, len(notes))
		for _, note := range notes {
			keep[string(noteKey(note.ID))] = struct{}{}
		}

		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		var stale [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if _, ok := keep[string(it.Item().Key())]; !ok {
				stale = append(stale, it.Item().KeyCopy(nil))
			}
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}

		for _, note := range notes {
			data, err := json.Marshal(note)
			if err != nil {
				return err
			}
			if err := txn.Set(noteKey(note.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to write note collection", slog.String("error", err.Error()))
		return store.NewStoreError("note", "save", "failed to write database", err)
	}

	log.Debug("saved note collection", slog.Int("count", len(notes)))
	return nil
}

// Get implements store.NoteStore.Get.
func (s *BadgerNoteStore) Get(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var note domain.Note
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(noteKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &note)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			log.Debug("note not found", slog.String("note_id", id.String()))
			return nil, store.ErrNoteNotFound
		}
		return nil, store.NewStoreError("note", "get", "failed to read database", err)
	}

	return &note, nil
}

// Put implements store.NoteStore.Put.
func (s *BadgerNoteStore) Put(ctx context.Context, note *domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := note.Validate(); err != nil {
		log.Warn("note validation failed during put",
			slog.String("error", err.Error()))
		return store.NewStoreError("note", "put", "invalid note", err)
	}

	data, err := json.Marshal(note)
	if err != nil {
		return store.NewStoreError("note", "put", "failed to encode note", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(noteKey(note.ID), data)
	})
	if err != nil {
		return store.NewStoreError("note", "put", "failed to write database", err)
	}

	return nil
}

// Delete implements store.NoteStore.Delete.
func (s *BadgerNoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(noteKey(id)); err != nil {
			return err
		}
		return txn.Delete(noteKey(id))
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			log.Debug("note not found", slog.String("note_id", id.String()))
			return store.ErrNoteNotFound
		}
		return store.NewStoreError("note", "delete", "failed to write database", err)
	}

	return nil
}

// GetByTask implements store.NoteStore.GetByTask.
// Key order has nothing to do with age, so matches are sorted by creation
// time to keep the oldest-first contract.
func (s *BadgerNoteStore) GetByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.Note, error) {
	notes, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	matched := []*domain.Note{}
	for _, note := range notes {
		if note.TaskID == taskID {
			matched = append(matched, note)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	return matched, nil
}
