package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/nhaldane/taskticker/internal/domain"
	"github.com/nhaldane/taskticker/internal/platform/logger"
	"github.com/nhaldane/taskticker/internal/store"
)

// BadgerTaskStore implements the store.TaskStore interface on a shared
// BadgerDB handle, one record per task. Beyond the whole-collection
// contract it offers keyed access for callers that only touch one task.
type BadgerTaskStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// NewBadgerTaskStore creates a new BadgerTaskStore with the given database
// handle and logger. If logger is nil, a default logger is used.
func NewBadgerTaskStore(db *badger.DB, logger *slog.Logger) *BadgerTaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &BadgerTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Verify BadgerTaskStore implements store.TaskStore interface (compile-time check)
var _ store.TaskStore = (*BadgerTaskStore)(nil)

// Load implements store.TaskStore.Load.
// Records come back in key order. A record that fails to decode yields a
// StoreError wrapping store.ErrInvalidEntity.
func (s *BadgerTaskStore) Load(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks := []*domain.Task{}
	prefix := []byte(taskKeyPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(val []byte) error {
				var task domain.Task
				if err := json.Unmarshal(val, &task); err != nil {
					return fmt.Errorf("%w: record %s: %v", store.ErrInvalidEntity, key, err)
				}
				tasks = append(tasks, &task)
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
			log.Warn("task record failed to decode", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "load", "invalid task record", err)
		}
		log.Error("failed to read task collection", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "load", "failed to read database", err)
	}

	log.Debug("loaded task collection", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Save implements store.TaskStore.Save.
// The incoming collection replaces every stored task record in a single
// transaction.
func (s *BadgerTaskStore) Save(ctx context.Context, tasks []*domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, task := range tasks {
		if err := task.Validate(); err != nil {
			log.Warn("task validation failed during save",
				slog.String("task_id", task.ID.String()),
				slog.String("error", err.Error()))
			return store.NewStoreError("task", "save", "invalid task", err)
		}
	}

	prefix := []byte(taskKeyPrefix)
	err := s.db.Update(func(txn *badger.Txn) error {
		keep := make(map[string]struct{}, len(tasks))
		for _, task := range tasks {
			keep[string(taskKey(task.ID))] = struct{}{}
		}

		// Collect stale keys first; deleting while iterating is not safe.
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

		for _, task := range tasks {
			data, err := json.Marshal(task)
			if err != nil {
				return err
			}
			if err := txn.Set(taskKey(task.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to write task collection", slog.String("error", err.Error()))
		return store.NewStoreError("task", "save", "failed to write database", err)
	}

	log.Debug("saved task collection", slog.Int("count", len(tasks)))
	return nil
}

// GetTask retrieves a single task by id.
// Returns store.ErrTaskNotFound if no record exists.
func (s *BadgerTaskStore) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var task domain.Task
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(taskKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &task)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "get", "failed to read database", err)
	}

	return &task, nil
}

// PutTask inserts or replaces a single task record.
func (s *BadgerTaskStore) PutTask(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during put",
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "put", "invalid task", err)
	}

	data, err := json.Marshal(task)
	if err != nil {
		return store.NewStoreError("task", "put", "failed to encode task", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(taskKey(task.ID), data)
	})
	if err != nil {
		return store.NewStoreError("task", "put", "failed to write database", err)
	}

	return nil
}

// DeleteTask removes a single task record by id.
// Returns store.ErrTaskNotFound if no record exists.
func (s *BadgerTaskStore) DeleteTask(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(taskKey(id)); err != nil {
			return err
		}
		return txn.Delete(taskKey(id))
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return store.ErrTaskNotFound
		}
		return store.NewStoreError("task", "delete", "failed to write database", err)
	}

	return nil
}
